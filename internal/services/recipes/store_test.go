package recipes

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/huevitoia/chef/internal/errors"
	"github.com/huevitoia/chef/internal/services/generation"
)

func TestSaveRequiresOwner(t *testing.T) {
	s := NewPostgresStore(nil)

	_, err := s.Save(context.Background(), &generation.RecipeResult{RecipeName: "Tacos"}, "")
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Type != apperrors.ErrorTypeStorage {
		t.Errorf("expected %s, got %s", apperrors.ErrorTypeStorage, appErr.Type)
	}
}

func TestListRequiresOwner(t *testing.T) {
	s := NewPostgresStore(nil)

	_, err := s.ListByOwner(context.Background(), "")
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Type != apperrors.ErrorTypeStorage {
		t.Errorf("expected %s, got %s", apperrors.ErrorTypeStorage, appErr.Type)
	}
}
