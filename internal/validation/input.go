package validation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Policy carries the configurable bounds applied during intake.
// A MaxPrepTimeMinutes of 0 disables the upper bound.
type Policy struct {
	MaxPrepTimeMinutes int
}

// Rejection describes why an answer was refused. It is consumed by the
// conversation state machine and never escapes as an error value.
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string {
	return r.Reason
}

// hasLetter reports whether the text contains at least one letter.
// Accepts any unicode letter so accented Spanish input passes.
func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// AnswerText validates a free-text answer (preferences, ingredients,
// cuisine). The trimmed text must contain at least one letter; sentinels
// like "ninguna" or "cualquiera" are ordinary text here.
func AnswerText(raw string) (string, *Rejection) {
	text := strings.TrimSpace(raw)
	if !hasLetter(text) {
		return "", &Rejection{Reason: "answer contains no letters"}
	}
	return text, nil
}

// PrepTimeMinutes validates the maximum preparation time answer as a
// positive base-10 integer, bounded by the policy when one is configured.
func PrepTimeMinutes(pol Policy, raw string) (int, *Rejection) {
	text := strings.TrimSpace(raw)
	minutes, err := strconv.Atoi(text)
	if err != nil {
		return 0, &Rejection{Reason: "answer is not a number"}
	}
	if minutes <= 0 {
		return 0, &Rejection{Reason: "minutes must be positive"}
	}
	if pol.MaxPrepTimeMinutes > 0 && minutes > pol.MaxPrepTimeMinutes {
		return 0, &Rejection{Reason: fmt.Sprintf("minutes must be at most %d", pol.MaxPrepTimeMinutes)}
	}
	return minutes, nil
}
