package generation

import "context"

// ProviderType represents the type of AI provider
type ProviderType string

const (
	ProviderGroq   ProviderType = "groq"
	ProviderOpenAI ProviderType = "openai"
)

// RecipeProvider defines the interface for AI recipe generation providers.
// Implementations return the three text fields of a RecipeResult; the
// image URL is resolved separately by the gateway.
type RecipeProvider interface {
	GenerateRecipe(ctx context.Context, req RecipeRequest) (*RecipeResult, error)
}
