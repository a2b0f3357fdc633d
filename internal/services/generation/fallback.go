package generation

import (
	"context"
	"log/slog"

	"github.com/huevitoia/chef/internal/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// FallbackProvider implements RecipeProvider with fallback logic
type FallbackProvider struct {
	primary   RecipeProvider
	secondary RecipeProvider
}

// NewFallbackProvider creates a new fallback provider
func NewFallbackProvider(primary, secondary RecipeProvider) *FallbackProvider {
	return &FallbackProvider{
		primary:   primary,
		secondary: secondary,
	}
}

// GenerateRecipe tries the primary provider first, falls back to secondary on retryable errors
func (f *FallbackProvider) GenerateRecipe(ctx context.Context, req RecipeRequest) (*RecipeResult, error) {
	result, err := f.primary.GenerateRecipe(ctx, req)
	if err == nil {
		return result, nil
	}

	providerErr := ClassifyError(err, "primary")

	if !IsRetryableError(err) {
		// Non-retryable errors would fail on the secondary too
		return nil, err
	}

	slog.Info("Primary provider failed with retryable error, attempting fallback",
		"error_type", providerErr.Type,
		"error", err.Error())

	metrics.ProviderFallbackTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from_provider", providerErr.Provider),
		attribute.String("to_provider", "secondary"),
		attribute.String("reason", providerErr.Type),
	))

	result, fallbackErr := f.secondary.GenerateRecipe(ctx, req)
	if fallbackErr == nil {
		slog.Info("Fallback provider succeeded", "primary_error_type", providerErr.Type)
		return result, nil
	}

	slog.Error("Fallback provider also failed",
		"primary_error", err.Error(),
		"fallback_error", fallbackErr.Error())

	// Report the fallback failure; the primary error is already logged
	return nil, fallbackErr
}
