package generation

import (
	"context"
	"log/slog"
	"time"

	"github.com/huevitoia/chef/internal/errors"
	"github.com/huevitoia/chef/internal/metrics"
	"github.com/huevitoia/chef/internal/services/ai"
	"github.com/huevitoia/chef/internal/services/image"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Gateway mediates the single external-call boundary of the system. It
// turns a completed RecipeRequest into a validated RecipeResult and maps
// every provider fault to an AppError; no raw provider error escapes it.
type Gateway struct {
	provider RecipeProvider
	images   image.Provider
}

// NewGateway creates a generation gateway over the given providers.
func NewGateway(provider RecipeProvider, images image.Provider) *Gateway {
	return &Gateway{
		provider: provider,
		images:   images,
	}
}

// Generate performs one best-effort generation attempt. There is no
// retry, timeout enforcement or caching at this level; failures are
// reported upward as AppError values.
func (g *Gateway) Generate(ctx context.Context, req RecipeRequest) (*RecipeResult, error) {
	startTime := time.Now()
	outcome := "success"
	defer func() {
		metrics.GenerationDuration.Record(ctx, time.Since(startTime).Seconds())
		metrics.GenerationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}()

	// The "no restrictions" sentinel never reaches the prompt
	req.Preferences = ai.NormalizePreferences(req.Preferences)

	result, err := g.provider.GenerateRecipe(ctx, req)
	if err != nil {
		outcome = "provider_failure"
		slog.Error("Recipe generation failed", "error", err)
		return nil, errors.NewGenerationError("recipe generation failed", "PROVIDER_FAILURE", err)
	}

	if field := missingField(result); field != "" {
		outcome = "incomplete"
		slog.Warn("AI returned incomplete recipe", "missing", field)
		return nil, errors.NewIncompleteGenerationError(field)
	}

	// Providers normally leave the image to the dedicated image call
	if result.ImageURL == "" {
		result.ImageURL = g.resolveImage(ctx, result.RecipeName)
	}

	return result, nil
}

// resolveImage asks the image provider for a dish photo and substitutes
// the placeholder on any failure or empty result. Image problems never
// fail an otherwise valid generation.
func (g *Gateway) resolveImage(ctx context.Context, recipeName string) string {
	url, err := g.images.GenerateImage(ctx, recipeName)
	if err != nil {
		slog.Warn("Image generation failed, using placeholder", "recipe", recipeName, "error", err)
	}
	if err != nil || url == "" {
		metrics.ImageFallbacksTotal.Add(ctx, 1)
		return image.PlaceholderURL
	}
	return url
}

// missingField returns the name of the first required text field that is
// empty, or "" when the result is complete. The image URL is checked by
// the caller after resolution.
func missingField(r *RecipeResult) string {
	switch {
	case r == nil:
		return "result"
	case r.RecipeName == "":
		return "recipeName"
	case r.Ingredients == "":
		return "ingredients"
	case r.Instructions == "":
		return "instructions"
	}
	return ""
}
