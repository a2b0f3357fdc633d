package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/huevitoia/chef/internal/metrics"
	"github.com/huevitoia/chef/internal/services/generation"
	"github.com/huevitoia/chef/internal/services/recipes"
)

func TestMain(m *testing.M) {
	metrics.Init()
	m.Run()
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(ctx context.Context, result *generation.RecipeResult, ownerID string) (string, error) {
	args := m.Called(ctx, result, ownerID)
	return args.String(0), args.Error(1)
}

func (m *MockStore) ListByOwner(ctx context.Context, ownerID string) ([]recipes.SavedRecipe, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]recipes.SavedRecipe), args.Error(1)
}

func saveTask(t *testing.T, payload SaveRecipePayload) *asynq.Task {
	t.Helper()
	task, err := NewSaveRecipeTask(payload)
	if err != nil {
		t.Fatalf("NewSaveRecipeTask: %v", err)
	}
	return task
}

func TestHandleSaveRecipe(t *testing.T) {
	ctx := context.Background()
	recipe := generation.RecipeResult{
		RecipeName:   "Tacos al Pastor",
		Ingredients:  "cerdo, piña, tortillas",
		Instructions: "Marinar y asar.",
		ImageURL:     "https://example.com/tacos.png",
	}

	t.Run("saves recipe for owner", func(t *testing.T) {
		mockStore := new(MockStore)
		mockStore.On("Save", ctx, &recipe, "user-123").Return("recipe-id", nil)

		saver := NewRecipeSaver(mockStore)
		err := saver.HandleSaveRecipe(ctx, saveTask(t, SaveRecipePayload{OwnerID: "user-123", Recipe: recipe}))

		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
	})

	t.Run("store error propagates for retry", func(t *testing.T) {
		mockStore := new(MockStore)
		mockStore.On("Save", ctx, &recipe, "user-123").Return("", errors.New("db down"))

		saver := NewRecipeSaver(mockStore)
		err := saver.HandleSaveRecipe(ctx, saveTask(t, SaveRecipePayload{OwnerID: "user-123", Recipe: recipe}))

		assert.Error(t, err)
		mockStore.AssertExpectations(t)
	})

	t.Run("missing owner is dropped without retry", func(t *testing.T) {
		mockStore := new(MockStore)

		saver := NewRecipeSaver(mockStore)
		err := saver.HandleSaveRecipe(ctx, saveTask(t, SaveRecipePayload{Recipe: recipe}))

		assert.NoError(t, err)
		mockStore.AssertNotCalled(t, "Save")
	})

	t.Run("malformed payload fails fast", func(t *testing.T) {
		saver := NewRecipeSaver(new(MockStore))
		err := saver.HandleSaveRecipe(ctx, asynq.NewTask(TypeSaveRecipe, []byte("not json")))

		assert.Error(t, err)
	})
}

func TestSaveRecipeTaskPayloadRoundTrip(t *testing.T) {
	payload := SaveRecipePayload{
		OwnerID: "user-123",
		Recipe:  generation.RecipeResult{RecipeName: "Tacos"},
	}
	task := saveTask(t, payload)

	assert.Equal(t, TypeSaveRecipe, task.Type())

	var decoded SaveRecipePayload
	assert.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, payload, decoded)
}
