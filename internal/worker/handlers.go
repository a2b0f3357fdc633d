package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/huevitoia/chef/internal/metrics"
	"github.com/huevitoia/chef/internal/services/recipes"
)

// RecipeSaver persists generated recipes on behalf of the chat API. The
// API enqueues and moves on; this handler absorbs the latency and the
// retries.
type RecipeSaver struct {
	store recipes.Store
}

func NewRecipeSaver(store recipes.Store) *RecipeSaver {
	return &RecipeSaver{store: store}
}

func (s *RecipeSaver) HandleSaveRecipe(ctx context.Context, t *asynq.Task) error {
	var payload SaveRecipePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.OwnerID == "" {
		// Anonymous sessions never enqueue saves; a payload without an
		// owner is malformed and retrying cannot fix it.
		slog.Warn("Dropping save task without owner", "recipe", payload.Recipe.RecipeName)
		return nil
	}

	slog.Info("Saving recipe", "owner_id", payload.OwnerID, "recipe", payload.Recipe.RecipeName)

	id, err := s.store.Save(ctx, &payload.Recipe, payload.OwnerID)
	if err != nil {
		metrics.RecipeSavesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "error")))
		slog.Error("Failed to save recipe", "owner_id", payload.OwnerID, "error", err)
		return err
	}

	metrics.RecipeSavesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success")))
	slog.Info("Recipe saved", "owner_id", payload.OwnerID, "recipe_id", id)
	return nil
}
