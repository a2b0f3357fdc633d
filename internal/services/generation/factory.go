package generation

import (
	"github.com/huevitoia/chef/internal/config"
)

// NewProvider creates a new recipe provider based on the configuration.
// When fallback is enabled the primary provider is wrapped so retryable
// failures are retried once against the secondary.
func NewProvider(cfg config.GenerationConfig, groqKey, openAIKey string) RecipeProvider {
	var primary RecipeProvider

	switch cfg.Provider {
	case "openai":
		primary = NewOpenAIProvider(openAIKey)
	default:
		// Default to groq
		primary = NewGroqProvider(groqKey)
	}

	if cfg.FallbackEnabled {
		var secondary RecipeProvider

		switch cfg.FallbackProvider {
		case "openai":
			secondary = NewOpenAIProvider(openAIKey)
		default:
			secondary = NewGroqProvider(groqKey)
		}

		return NewFallbackProvider(primary, secondary)
	}

	return primary
}
