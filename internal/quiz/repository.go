package quiz

import (
	"context"
	"errors"
)

// ErrNoQuestions is returned when a session start finds no questions to draw
// from, either because the bank is empty or the requested level is unknown.
var ErrNoQuestions = errors.New("no questions available")

// LevelInfo describes one difficulty level and how many questions it holds.
// Level identifiers are opaque bucket labels assigned at import time; they
// carry no guarantee of true difficulty ordering.
type LevelInfo struct {
	Level         int `json:"level"`
	QuestionCount int `json:"question_count"`
}

// Repository is the read-only question bank consumed by the session engine.
type Repository interface {
	// AllQuestions returns every known question in insertion order. An empty
	// bank yields an empty slice, not an error.
	AllQuestions(ctx context.Context) ([]Question, error)

	// QuestionsForLevel returns the questions grouped under level, or an
	// empty slice when the level is unknown. Unknown levels are not errors.
	QuestionsForLevel(ctx context.Context, level int) ([]Question, error)

	// LevelSummary returns one entry per known level, ascending by level.
	LevelSummary(ctx context.Context) ([]LevelInfo, error)
}

// Explainer produces a short natural-language explanation of why an answer
// is correct. Implementations must never fail: on any internal error they
// return a fixed human-readable fallback string instead.
type Explainer interface {
	Explain(ctx context.Context, question, correctAnswer string) string
}
