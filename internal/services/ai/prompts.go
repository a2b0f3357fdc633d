package ai

import (
	"fmt"
	"strings"
)

const systemSection = `<ROLE>
You are a recipe creation AI. Given a list of available ingredients, a desired cuisine style, a maximum preparation time and optional dietary preferences or allergies, you create one recipe that fits every constraint.
</ROLE>`

const guidelinesSection = `<GUIDELINES>
- Use only ingredients the user listed, plus pantry staples (salt, pepper, oil, water).
- The total preparation and cooking time must not exceed the given maximum.
- Honor every dietary preference and allergy strictly; never include an ingredient the user excluded.
- When the cuisine style is "cualquiera" or "any", choose whichever cuisine best suits the ingredients.
- Write the recipe in the language the user wrote their ingredients in.
- Instructions must be numbered, step-by-step and actionable.
</GUIDELINES>`

const outputFormatSection = `<OUTPUT_FORMAT>
Always respond with a JSON object with exactly this structure:

{
  "recipe_name": "",
  "ingredients": "",
  "instructions": ""
}

"recipe_name" is the dish name. "ingredients" is the full ingredient list with quantities, one per line. "instructions" is the numbered cooking steps, one per line. Do not include any text outside the JSON object.
</OUTPUT_FORMAT>`

// BuildSystemPrompt returns the system prompt for recipe generation.
func BuildSystemPrompt() string {
	return strings.Join([]string{systemSection, guidelinesSection, outputFormatSection}, "\n\n")
}

// BuildUserPrompt embeds the collected constraints into the user message.
// The preferences clause is omitted entirely when preferences is empty.
func BuildUserPrompt(ingredients, cuisine string, maxPrepTimeMinutes int, preferences string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ingredients: %s\n", ingredients)
	fmt.Fprintf(&b, "Cuisine Style: %s\n", cuisine)
	fmt.Fprintf(&b, "Max Prep Time: %d minutes", maxPrepTimeMinutes)
	if preferences != "" {
		fmt.Fprintf(&b, "\nDietary Preferences/Allergies: %s", preferences)
	}
	return b.String()
}

// preference sentinels meaning "no restrictions"; the Spanish one comes
// from the chat UI, the English one from the form variant.
var noPreferenceSentinels = map[string]struct{}{
	"ninguna": {},
	"none":    {},
}

// NormalizePreferences maps the "no restrictions" sentinels to the empty
// string so the prompt omits the preferences clause.
func NormalizePreferences(preferences string) string {
	trimmed := strings.TrimSpace(preferences)
	if _, ok := noPreferenceSentinels[strings.ToLower(trimmed)]; ok {
		return ""
	}
	return trimmed
}

// BuildImagePrompt returns the prompt for generating a photo of the dish.
func BuildImagePrompt(recipeName string) string {
	return fmt.Sprintf("A professional, appetizing food photograph of %s, plated and ready to serve, natural lighting.", recipeName)
}
