package image

import "context"

// PlaceholderURL is substituted whenever image generation fails or
// returns nothing. A recipe is never rejected for lacking a real photo.
const PlaceholderURL = "https://placehold.co/600x400.png"

// Provider generates an image for a dish and returns its URL.
type Provider interface {
	GenerateImage(ctx context.Context, recipeName string) (string, error)
}
