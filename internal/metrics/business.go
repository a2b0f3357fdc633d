package metrics

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter = otel.Meter("huevitoia/business")

	// Generation metrics
	GenerationsTotal      metric.Int64Counter
	GenerationDuration    metric.Float64Histogram
	ImageFallbacksTotal   metric.Int64Counter
	ProviderFallbackTotal metric.Int64Counter

	// External API metrics
	ExternalAPICallsTotal metric.Int64Counter
	ExternalAPIDuration   metric.Float64Histogram

	// Conversation metrics
	ConversationsCompletedTotal metric.Int64Counter

	// Persistence metrics
	RecipeSavesTotal metric.Int64Counter
)

func Init() error {
	var err error

	GenerationsTotal, err = meter.Int64Counter(
		"recipe.generations.total",
		metric.WithDescription("Total number of recipe generation attempts"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	GenerationDuration, err = meter.Float64Histogram(
		"recipe.generation.duration",
		metric.WithDescription("Duration of AI recipe generation"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30, 60),
	)
	if err != nil {
		return err
	}

	ImageFallbacksTotal, err = meter.Int64Counter(
		"recipe.image.fallbacks.total",
		metric.WithDescription("Generated recipes that fell back to the placeholder image"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ProviderFallbackTotal, err = meter.Int64Counter(
		"provider.fallback.total",
		metric.WithDescription("Total number of provider fallback events"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPICallsTotal, err = meter.Int64Counter(
		"external.api.calls.total",
		metric.WithDescription("Total number of external API calls"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPIDuration, err = meter.Float64Histogram(
		"external.api.duration",
		metric.WithDescription("Duration of external API calls"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30),
	)
	if err != nil {
		return err
	}

	ConversationsCompletedTotal, err = meter.Int64Counter(
		"conversation.completed.total",
		metric.WithDescription("Conversations that reached the generation stage"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	RecipeSavesTotal, err = meter.Int64Counter(
		"recipe.saves.total",
		metric.WithDescription("Total number of recipe save attempts"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	return nil
}
