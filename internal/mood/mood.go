package mood

import "strings"

// Label is one entry of the closed mood vocabulary. Values outside the
// vocabulary are never stored; external text must pass through Normalize.
type Label string

const (
	Happy    Label = "Happy"
	Sad      Label = "Sad"
	Stressed Label = "Stressed"
	Anxious  Label = "Anxious"
	Neutral  Label = "Neutral"
	Excited  Label = "Excited"
)

// Vocabulary returns every valid label in canonical order.
func Vocabulary() []Label {
	return []Label{Happy, Sad, Stressed, Anxious, Neutral, Excited}
}

// Normalize matches an arbitrary string against the vocabulary, ignoring
// case and surrounding whitespace. ok is false for anything outside the
// vocabulary.
func Normalize(s string) (Label, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "happy":
		return Happy, true
	case "sad":
		return Sad, true
	case "stressed":
		return Stressed, true
	case "anxious":
		return Anxious, true
	case "neutral":
		return Neutral, true
	case "excited":
		return Excited, true
	default:
		return Neutral, false
	}
}

// Valid reports whether l is a member of the vocabulary.
func Valid(l Label) bool {
	_, ok := Normalize(string(l))
	return ok
}
