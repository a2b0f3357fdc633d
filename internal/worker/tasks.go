package worker

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/huevitoia/chef/internal/services/generation"
)

// Task type constants
const (
	TypeSaveRecipe = "save:recipe"
)

// SaveRecipePayload is the payload for recipe save tasks. The recipe is
// carried inline so the worker never has to re-fetch the session.
type SaveRecipePayload struct {
	OwnerID string                  `json:"owner_id"`
	Recipe  generation.RecipeResult `json:"recipe"`
}

// NewSaveRecipeTask creates a new save recipe task. Saves are bounded to
// a few retries; a recipe the user already saw is not worth retrying
// forever.
func NewSaveRecipeTask(payload SaveRecipePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSaveRecipe, data, asynq.MaxRetry(3)), nil
}
