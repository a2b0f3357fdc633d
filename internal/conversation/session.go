package conversation

import (
	"time"

	"github.com/google/uuid"
	"github.com/huevitoia/chef/internal/services/generation"
)

// Answers accumulates the four recipe constraints across the dialogue.
// Each field is written exactly once, at its dedicated stage.
type Answers struct {
	Preferences        string `json:"preferences"`
	Ingredients        string `json:"ingredients"`
	Cuisine            string `json:"cuisine"`
	MaxPrepTimeMinutes int    `json:"maxPrepTimeMinutes"`
}

// Entry is one message of the append-only transcript. Recipe is set only
// on the assistant entry that delivers the final result.
type Entry struct {
	ID      string                   `json:"id"`
	Speaker Speaker                  `json:"speaker"`
	Text    string                   `json:"text,omitempty"`
	Recipe  *generation.RecipeResult `json:"recipe,omitempty"`
}

// Session is one conversation, owned exclusively by a single client.
type Session struct {
	ID         string    `json:"id"`
	Stage      Stage     `json:"stage"`
	Answers    Answers   `json:"answers"`
	Transcript []Entry   `json:"transcript"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewSession creates a session at the first stage with the two seed
// assistant prompts.
func NewSession() *Session {
	now := time.Now().UTC()
	s := &Session{
		ID:        uuid.New().String(),
		Stage:     StageAskPreferences,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.seedTranscript()
	return s
}

func (s *Session) seedTranscript() {
	s.Transcript = []Entry{
		{ID: uuid.New().String(), Speaker: SpeakerAssistant, Text: msgGreeting},
		{ID: uuid.New().String(), Speaker: SpeakerAssistant, Text: msgAskPreferences},
	}
}

func (s *Session) append(speaker Speaker, text string) {
	s.Transcript = append(s.Transcript, Entry{
		ID:      uuid.New().String(),
		Speaker: speaker,
		Text:    text,
	})
	s.UpdatedAt = time.Now().UTC()
}

func (s *Session) appendRecipe(result *generation.RecipeResult) {
	s.Transcript = append(s.Transcript, Entry{
		ID:      uuid.New().String(),
		Speaker: SpeakerAssistant,
		Text:    msgRecipeReady,
		Recipe:  result,
	})
	s.UpdatedAt = time.Now().UTC()
}
