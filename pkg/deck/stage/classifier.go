package stage

import "strings"

// ConfirmClassifier decides whether a free-text chat message counts as a
// confirmation for the current stage. Implementations must be cheap and
// deterministic; anything smarter than keyword matching belongs behind this
// interface, not inline in the state machine.
type ConfirmClassifier interface {
	IsOutlineConfirm(message string) bool
	IsStyleConfirm(message string) bool
}

// KeywordClassifier matches a fixed keyword set per stage using
// case-insensitive substring containment. Any message containing a keyword is
// treated as a full confirmation, so negated phrases like "not sure, ok?"
// confirm too. Tests pin this behavior; do not tighten the matching without
// revisiting them.
type KeywordClassifier struct {
	outlineKeywords []string
	styleKeywords   []string
}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		outlineKeywords: []string{"confirm", "ok", "okay", "looks good", "approved", "no problem"},
		styleKeywords:   []string{"generate", "start", "confirm", "ok", "go ahead"},
	}
}

func (c *KeywordClassifier) IsOutlineConfirm(message string) bool {
	return containsAny(message, c.outlineKeywords)
}

func (c *KeywordClassifier) IsStyleConfirm(message string) bool {
	return containsAny(message, c.styleKeywords)
}

func containsAny(message string, keywords []string) bool {
	lowered := strings.ToLower(message)
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
