package generation

import (
	"context"
	"fmt"
	"os"
	"testing"

	apperrors "github.com/huevitoia/chef/internal/errors"
	"github.com/huevitoia/chef/internal/metrics"
	"github.com/huevitoia/chef/internal/services/image"
)

func TestMain(m *testing.M) {
	// Instruments are package globals; the noop meter provider is enough
	if err := metrics.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// stubProvider echoes a fixed result or error.
type stubProvider struct {
	result  *RecipeResult
	err     error
	lastReq RecipeRequest
}

func (s *stubProvider) GenerateRecipe(_ context.Context, req RecipeRequest) (*RecipeResult, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	// Copy so the gateway cannot mutate the fixture
	result := *s.result
	return &result, nil
}

type stubImageProvider struct {
	url string
	err error
}

func (s *stubImageProvider) GenerateImage(context.Context, string) (string, error) {
	return s.url, s.err
}

func TestGateway_SubstitutesPlaceholderImage(t *testing.T) {
	provider := &stubProvider{result: &RecipeResult{
		RecipeName:   "Test Dish",
		Ingredients:  "chicken, rice",
		Instructions: "Cook it.",
		ImageURL:     "",
	}}
	gw := NewGateway(provider, &stubImageProvider{url: ""})

	req := RecipeRequest{
		Preferences:        "none",
		Ingredients:        "chicken, rice, broccoli",
		Cuisine:            "Asian",
		MaxPrepTimeMinutes: 30,
	}

	result, err := gw.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if result.ImageURL != image.PlaceholderURL {
		t.Errorf("expected placeholder image URL, got %q", result.ImageURL)
	}
	if result.RecipeName != "Test Dish" {
		t.Errorf("expected recipe name to pass through, got %q", result.RecipeName)
	}
}

func TestGateway_NormalizesPreferenceSentinel(t *testing.T) {
	provider := &stubProvider{result: &RecipeResult{
		RecipeName:   "Arroz con Pollo",
		Ingredients:  "pollo, arroz",
		Instructions: "1. Cocinar.",
	}}
	gw := NewGateway(provider, image.NoopProvider{})

	_, err := gw.Generate(context.Background(), RecipeRequest{
		Preferences:        "ninguna",
		Ingredients:        "pollo, arroz",
		Cuisine:            "cualquiera",
		MaxPrepTimeMinutes: 30,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if provider.lastReq.Preferences != "" {
		t.Errorf("expected sentinel preferences to be normalized to empty, got %q", provider.lastReq.Preferences)
	}
}

func TestGateway_IncompleteGeneration(t *testing.T) {
	tests := []struct {
		name   string
		result *RecipeResult
	}{
		{name: "missing instructions", result: &RecipeResult{RecipeName: "Dish", Ingredients: "rice", Instructions: ""}},
		{name: "missing name", result: &RecipeResult{RecipeName: "", Ingredients: "rice", Instructions: "Cook."}},
		{name: "missing ingredients", result: &RecipeResult{RecipeName: "Dish", Ingredients: "", Instructions: "Cook."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := NewGateway(&stubProvider{result: tt.result}, image.NoopProvider{})

			result, err := gw.Generate(context.Background(), RecipeRequest{Ingredients: "rice", Cuisine: "any", MaxPrepTimeMinutes: 10})
			if err == nil {
				t.Fatalf("expected error, got result %+v", result)
			}

			appErr, ok := err.(*apperrors.AppError)
			if !ok {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.Type != apperrors.ErrorTypeIncomplete {
				t.Errorf("expected incomplete generation error, got %v", appErr.Type)
			}
		})
	}
}

func TestGateway_ProviderFailure(t *testing.T) {
	gw := NewGateway(&stubProvider{err: fmt.Errorf("connection reset")}, image.NoopProvider{})

	_, err := gw.Generate(context.Background(), RecipeRequest{Ingredients: "rice", Cuisine: "any", MaxPrepTimeMinutes: 10})
	if err == nil {
		t.Fatal("expected error")
	}

	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Type != apperrors.ErrorTypeGeneration {
		t.Errorf("expected generation error, got %v", appErr.Type)
	}
}

func TestGateway_ImageFailureNeverFailsGeneration(t *testing.T) {
	provider := &stubProvider{result: &RecipeResult{
		RecipeName:   "Dish",
		Ingredients:  "rice",
		Instructions: "Cook.",
	}}
	gw := NewGateway(provider, &stubImageProvider{err: fmt.Errorf("image provider down")})

	result, err := gw.Generate(context.Background(), RecipeRequest{Ingredients: "rice", Cuisine: "any", MaxPrepTimeMinutes: 10})
	if err != nil {
		t.Fatalf("expected image failure to be absorbed, got %v", err)
	}
	if result.ImageURL != image.PlaceholderURL {
		t.Errorf("expected placeholder image URL, got %q", result.ImageURL)
	}
}

func TestGateway_KeepsGeneratedImageURL(t *testing.T) {
	provider := &stubProvider{result: &RecipeResult{
		RecipeName:   "Dish",
		Ingredients:  "rice",
		Instructions: "Cook.",
	}}
	gw := NewGateway(provider, &stubImageProvider{url: "https://images.example.com/dish.png"})

	result, err := gw.Generate(context.Background(), RecipeRequest{Ingredients: "rice", Cuisine: "any", MaxPrepTimeMinutes: 10})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.ImageURL != "https://images.example.com/dish.png" {
		t.Errorf("expected generated image URL, got %q", result.ImageURL)
	}
}
