package conversation

// Stage is one step of the fixed intake sequence. Progress is strictly
// forward; Done and Failed are terminal but reset back to the start.
type Stage string

const (
	StageAskPreferences Stage = "ask_preferences"
	StageAskIngredients Stage = "ask_ingredients"
	StageAskCuisine     Stage = "ask_cuisine"
	StageAskMaxTime     Stage = "ask_max_time"
	StageGenerating     Stage = "generating"
	StageDone           Stage = "done"
	StageFailed         Stage = "failed"
)

// Terminal reports whether the conversation has ended (successfully or
// not) and only a reset can continue it.
func (s Stage) Terminal() bool {
	return s == StageDone || s == StageFailed
}

// Speaker identifies who authored a transcript entry.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)
