package generation

import (
	"context"
	"fmt"
	"testing"
)

func TestFallback_PrimarySucceeds(t *testing.T) {
	primary := &stubProvider{result: &RecipeResult{RecipeName: "Primary Dish", Ingredients: "a", Instructions: "b"}}
	secondary := &stubProvider{result: &RecipeResult{RecipeName: "Secondary Dish", Ingredients: "a", Instructions: "b"}}

	f := NewFallbackProvider(primary, secondary)

	result, err := f.GenerateRecipe(context.Background(), RecipeRequest{})
	if err != nil {
		t.Fatalf("GenerateRecipe failed: %v", err)
	}
	if result.RecipeName != "Primary Dish" {
		t.Errorf("expected primary result, got %q", result.RecipeName)
	}
}

func TestFallback_RetryableErrorFallsBack(t *testing.T) {
	primary := &stubProvider{err: fmt.Errorf("Groq API error (status 429): rate limit")}
	secondary := &stubProvider{result: &RecipeResult{RecipeName: "Secondary Dish", Ingredients: "a", Instructions: "b"}}

	f := NewFallbackProvider(primary, secondary)

	result, err := f.GenerateRecipe(context.Background(), RecipeRequest{})
	if err != nil {
		t.Fatalf("GenerateRecipe failed: %v", err)
	}
	if result.RecipeName != "Secondary Dish" {
		t.Errorf("expected secondary result, got %q", result.RecipeName)
	}
}

func TestFallback_NonRetryableErrorDoesNotFallBack(t *testing.T) {
	primary := &stubProvider{err: fmt.Errorf("Groq API error (status 401): unauthorized")}
	secondary := &stubProvider{result: &RecipeResult{RecipeName: "Secondary Dish", Ingredients: "a", Instructions: "b"}}

	f := NewFallbackProvider(primary, secondary)

	_, err := f.GenerateRecipe(context.Background(), RecipeRequest{})
	if err == nil {
		t.Fatal("expected the primary error to be returned without fallback")
	}
}

func TestFallback_BothFail(t *testing.T) {
	primary := &stubProvider{err: fmt.Errorf("Groq API error (status 500): server error")}
	secondary := &stubProvider{err: fmt.Errorf("OpenAI API error (status 500): server error")}

	f := NewFallbackProvider(primary, secondary)

	_, err := f.GenerateRecipe(context.Background(), RecipeRequest{})
	if err == nil {
		t.Fatal("expected error when both providers fail")
	}
}
