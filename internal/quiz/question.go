package quiz

// Question is a single multiple-choice question from the bank. Questions are
// built once at import time and never mutated afterwards.
type Question struct {
	// ID is the identifier carried over from the source file. It is opaque
	// and may be empty.
	ID           string   `json:"id,omitempty"`
	Prompt       string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Level        int      `json:"level,omitempty"`
}

// Valid reports whether CorrectIndex points at one of the options.
func (q Question) Valid() bool {
	return q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options)
}

// CorrectText returns the text of the correct option, or "" when the
// question is malformed.
func (q Question) CorrectText() string {
	if !q.Valid() {
		return ""
	}
	return q.Options[q.CorrectIndex]
}
