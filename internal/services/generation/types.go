package generation

// RecipeRequest is the immutable snapshot of a completed intake
// conversation, taken once when the conversation reaches generation.
type RecipeRequest struct {
	Ingredients        string `json:"ingredients"`
	Cuisine            string `json:"cuisine"`
	MaxPrepTimeMinutes int    `json:"maxPrepTime"`
	Preferences        string `json:"preferences,omitempty"`
}

// RecipeResult is a fully generated recipe. All four fields must be
// non-empty for the result to be valid; there is no partial success.
type RecipeResult struct {
	RecipeName   string `json:"recipeName"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	ImageURL     string `json:"imageUrl"`
}
