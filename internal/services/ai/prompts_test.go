package ai

import (
	"strings"
	"testing"
)

func TestBuildUserPrompt(t *testing.T) {
	prompt := BuildUserPrompt("chicken, rice, broccoli", "Asian", 30, "vegetarian")

	for _, want := range []string{
		"Ingredients: chicken, rice, broccoli",
		"Cuisine Style: Asian",
		"Max Prep Time: 30 minutes",
		"Dietary Preferences/Allergies: vegetarian",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected prompt to contain %q, got:\n%s", want, prompt)
		}
	}
}

func TestBuildUserPrompt_OmitsEmptyPreferences(t *testing.T) {
	prompt := BuildUserPrompt("chicken, rice", "Mexican", 45, "")

	if strings.Contains(prompt, "Dietary Preferences") {
		t.Errorf("expected preferences clause to be omitted, got:\n%s", prompt)
	}
}

func TestNormalizePreferences(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ninguna", ""},
		{"Ninguna", ""},
		{"none", ""},
		{" none ", ""},
		{"vegetariano", "vegetariano"},
		{"sin gluten", "sin gluten"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizePreferences(tt.input); got != tt.want {
			t.Errorf("NormalizePreferences(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := BuildSystemPrompt()

	for _, want := range []string{"<ROLE>", "<GUIDELINES>", "<OUTPUT_FORMAT>", "recipe_name", "instructions"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected system prompt to contain %q", want)
		}
	}
}

func TestBuildImagePrompt(t *testing.T) {
	prompt := BuildImagePrompt("Tacos al Pastor")
	if !strings.Contains(prompt, "Tacos al Pastor") {
		t.Errorf("expected image prompt to mention the recipe name, got %q", prompt)
	}
}
