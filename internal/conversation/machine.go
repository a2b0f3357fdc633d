package conversation

import (
	"errors"
	"fmt"

	"github.com/huevitoia/chef/internal/services/generation"
	"github.com/huevitoia/chef/internal/validation"
)

// Assistant copy, verbatim from the product.
const (
	msgGreeting       = "¡Hola! Soy HuevitoIa. Estoy aquí para ayudarte a crear una receta deliciosa con los ingredientes que tienes en casa."
	msgAskPreferences = "Primero, ¿tienes alguna alergia o preferencia dietética? (ej. vegetariano, sin gluten, alergia a los frutos secos). Si no tienes ninguna, solo escribe \"ninguna\"."
	msgAskIngredients = "¡Entendido! Ahora, por favor, dime qué ingredientes tienes. Sepáralos por comas (ej. pollo, arroz, brócoli)."
	msgAskCuisine     = "Perfecto. ¿Qué estilo de cocina te apetece? (ej. Mexicana, Italiana, Asiática, o 'cualquiera')"
	msgAskMaxTime     = "¡Suena bien! Por último, ¿cuál es el tiempo máximo de preparación en minutos? (ej. 30)"
	msgGenerating     = "¡Genial! Estoy buscando la receta perfecta para ti. Esto puede tardar un momento..."
	msgRecipeReady    = "¡Aquí tienes tu receta!"

	msgInvalidPreferences = "Por favor, introduce preferencias válidas o escribe 'ninguna'."
	msgInvalidIngredients = "Parece que eso no son ingredientes. Por favor, introduce una lista de ingredientes válidos."
	msgInvalidCuisine     = "Por favor, introduce un estilo de cocina válido o escribe 'cualquiera'."
	msgInvalidMaxTime     = "Por favor, introduce un número válido para los minutos. ¿Cuánto tiempo tienes?"
)

var (
	// ErrGenerationPending is returned when input arrives while a
	// generation is already in flight for the session.
	ErrGenerationPending = errors.New("a generation is already in progress")

	// ErrConversationOver is returned when input arrives at a terminal
	// stage; only a reset continues the conversation.
	ErrConversationOver = errors.New("conversation is finished; reset to start over")
)

// Advance feeds one user answer through the state machine. The user
// entry and the resulting assistant entry are appended to the
// transcript. On a rejected answer the stage and answers are untouched
// and the assistant re-prompts. When the final answer is accepted the
// session moves to Generating and the returned RecipeRequest snapshot is
// non-nil; this is the machine's only outward signal.
func (s *Session) Advance(pol validation.Policy, input string) (*generation.RecipeRequest, error) {
	if s.Stage == StageGenerating {
		return nil, ErrGenerationPending
	}
	if s.Stage.Terminal() {
		return nil, ErrConversationOver
	}

	s.append(SpeakerUser, input)

	switch s.Stage {
	case StageAskPreferences:
		text, rej := validation.AnswerText(input)
		if rej != nil {
			s.append(SpeakerAssistant, msgInvalidPreferences)
			return nil, nil
		}
		s.Answers.Preferences = text
		s.append(SpeakerAssistant, msgAskIngredients)
		s.Stage = StageAskIngredients

	case StageAskIngredients:
		text, rej := validation.AnswerText(input)
		if rej != nil {
			s.append(SpeakerAssistant, msgInvalidIngredients)
			return nil, nil
		}
		s.Answers.Ingredients = text
		s.append(SpeakerAssistant, msgAskCuisine)
		s.Stage = StageAskCuisine

	case StageAskCuisine:
		text, rej := validation.AnswerText(input)
		if rej != nil {
			s.append(SpeakerAssistant, msgInvalidCuisine)
			return nil, nil
		}
		s.Answers.Cuisine = text
		s.append(SpeakerAssistant, msgAskMaxTime)
		s.Stage = StageAskMaxTime

	case StageAskMaxTime:
		minutes, rej := validation.PrepTimeMinutes(pol, input)
		if rej != nil {
			s.append(SpeakerAssistant, msgInvalidMaxTime)
			return nil, nil
		}
		s.Answers.MaxPrepTimeMinutes = minutes
		s.append(SpeakerAssistant, msgGenerating)
		s.Stage = StageGenerating
		req := generation.RecipeRequest{
			Preferences:        s.Answers.Preferences,
			Ingredients:        s.Answers.Ingredients,
			Cuisine:            s.Answers.Cuisine,
			MaxPrepTimeMinutes: s.Answers.MaxPrepTimeMinutes,
		}
		return &req, nil
	}

	return nil, nil
}

// CompleteGeneration records a successful generation and ends the
// conversation.
func (s *Session) CompleteGeneration(result *generation.RecipeResult) {
	s.appendRecipe(result)
	s.Stage = StageDone
}

// FailGeneration records a failed generation with a user-facing message
// and an invitation to retry.
func (s *Session) FailGeneration(reason string) {
	s.append(SpeakerAssistant, fmt.Sprintf("Hubo un error: %s. ¿Quieres intentarlo de nuevo?", reason))
	s.Stage = StageFailed
}

// Reset returns a Done or Failed session to the first stage with cleared
// answers and the seed transcript.
func (s *Session) Reset() error {
	if !s.Stage.Terminal() {
		return fmt.Errorf("cannot reset from stage %s", s.Stage)
	}
	s.Answers = Answers{}
	s.Stage = StageAskPreferences
	s.seedTranscript()
	return nil
}
