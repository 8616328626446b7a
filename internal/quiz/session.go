package quiz

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

// Mode selects how a session assembles and consumes its question sequence.
type Mode string

const (
	// ModeStandard is a fixed-length quiz bounded by the target size.
	ModeStandard Mode = "standard"
	// ModeUnlimited is open-ended: the sequence is refilled in batches as
	// the user nears its tail and only an explicit end finishes it.
	ModeUnlimited Mode = "unlimited"
)

// Phase is the coarse session state.
type Phase string

const (
	PhaseConfiguring Phase = "configuring"
	PhaseActive      Phase = "active"
	PhaseFinished    Phase = "finished"
)

const (
	// UnlimitedBatchSize is how many freshly shuffled questions are appended
	// when an unlimited session reaches the tail of its sequence.
	UnlimitedBatchSize = 15

	// DefaultTargetSize is used when a standard session is started without
	// an explicit size.
	DefaultTargetSize = 15
)

func init() {
	rand.Seed(time.Now().UnixNano())
}

// Session is the quiz state machine for a single user. All state is owned by
// the session and guarded by its mutex; user intents (Start, SelectOption,
// Advance, EndEarly, Restart) are serialized, and the only background writer
// is the explanation fetch, which applies its result as one atomic update.
//
// Operations requested in a phase where they have no effect are silent
// no-ops, never errors.
type Session struct {
	mu sync.Mutex

	repo      Repository
	explainer Explainer

	phase       Phase
	mode        Mode
	levelFilter *int
	targetSize  int

	// pool is the full question pool, retained only in unlimited mode so
	// tail refills do not go back to the repository.
	pool     []Question
	sequence []Question
	position int

	selectedOption *int
	revealed       bool
	score          int

	explanation        string
	explanationPending bool

	// fetchSeq tags the in-flight explanation fetch. Every question
	// transition bumps it, so a late-arriving result for an abandoned
	// question is recognized and dropped.
	fetchSeq  uint64
	fetchDone chan struct{}
}

// NewSession returns a session in the configuring phase. Both dependencies
// are required; the explainer is only consulted on incorrect answers.
func NewSession(repo Repository, explainer Explainer) *Session {
	return &Session{
		repo:      repo,
		explainer: explainer,
		phase:     PhaseConfiguring,
	}
}

// Start assembles a fresh question sequence and activates the session.
//
// Unlimited mode shuffles the entire pool and ignores level and size.
// Standard mode shuffles either the requested level or the entire pool and
// truncates to targetSize; when fewer questions are available than asked
// for, all available questions are used. A repository failure or an empty
// result leaves the session unchanged; no partial session is created.
func (s *Session) Start(ctx context.Context, mode Mode, levelFilter *int, targetSize int) error {
	if mode != ModeUnlimited {
		mode = ModeStandard
	}
	if targetSize <= 0 {
		targetSize = DefaultTargetSize
	}

	var (
		source []Question
		err    error
	)
	if mode == ModeStandard && levelFilter != nil {
		source, err = s.repo.QuestionsForLevel(ctx, *levelFilter)
	} else {
		source, err = s.repo.AllQuestions(ctx)
	}
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}
	if len(source) == 0 {
		return ErrNoQuestions
	}

	sequence := shuffled(source)
	if mode == ModeStandard && targetSize < len(sequence) {
		sequence = sequence[:targetSize]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase = PhaseActive
	s.mode = mode
	s.levelFilter = levelFilter
	s.targetSize = targetSize
	s.pool = nil
	if mode == ModeUnlimited {
		s.pool = source
	}
	s.sequence = sequence
	s.position = 0
	s.score = 0
	s.clearQuestionState()
	return nil
}

// SelectOption records the user's pick for the current question and reveals
// the outcome. Selecting after reveal, out of range, or outside an active
// session is a no-op. A correct pick increments the score; a wrong pick
// launches the background explanation fetch without blocking the reveal.
func (s *Session) SelectOption(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive || s.revealed || s.position >= len(s.sequence) {
		return
	}
	question := s.sequence[s.position]
	if index < 0 || index >= len(question.Options) {
		return
	}

	picked := index
	s.selectedOption = &picked
	s.revealed = true

	if index == question.CorrectIndex {
		s.score++
		return
	}

	s.fetchSeq++
	s.explanationPending = true
	done := make(chan struct{})
	s.fetchDone = done
	go s.fetchExplanation(question, s.fetchSeq, done)
}

// fetchExplanation runs outside the lock; the reveal has already happened.
// The fetch is cancellation-agnostic: even if the user moves on, it runs to
// completion and the tag check decides whether the result is still wanted.
func (s *Session) fetchExplanation(question Question, tag uint64, done chan struct{}) {
	defer close(done)

	text := s.explainer.Explain(context.Background(), question.Prompt, question.CorrectText())

	s.mu.Lock()
	defer s.mu.Unlock()
	if tag != s.fetchSeq {
		// The user advanced past the question while the fetch was in
		// flight. Drop the stale result.
		return
	}
	s.explanation = text
	s.explanationPending = false
}

// Advance moves to the next question once the current one is revealed.
// In unlimited mode a fresh batch is appended before advancing whenever the
// position is at the tail, so the sequence never runs out. In standard mode
// advancing from the last question finishes the session.
func (s *Session) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive || !s.revealed {
		return
	}

	if s.mode == ModeUnlimited && s.position >= len(s.sequence)-1 {
		s.sequence = append(s.sequence, batchFrom(s.pool, UnlimitedBatchSize)...)
	}

	if s.position >= len(s.sequence)-1 {
		s.phase = PhaseFinished
		return
	}

	s.position++
	s.clearQuestionState()
}

// EndEarly finishes an active session immediately. This is the only way an
// unlimited session reaches the finished phase.
func (s *Session) EndEarly() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return
	}
	s.phase = PhaseFinished
	// Invalidate any in-flight fetch; the result no longer has a home.
	s.fetchSeq++
	s.explanationPending = false
}

// Restart discards the session outcome and returns to the configuring
// phase. The next Start begins completely fresh.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase = PhaseConfiguring
	s.mode = ""
	s.levelFilter = nil
	s.targetSize = 0
	s.pool = nil
	s.sequence = nil
	s.position = 0
	s.score = 0
	s.clearQuestionState()
}

// clearQuestionState resets the per-question fields. Callers hold the lock.
func (s *Session) clearQuestionState() {
	s.selectedOption = nil
	s.revealed = false
	s.explanation = ""
	s.explanationPending = false
	s.fetchSeq++
	s.fetchDone = nil
}

// ExplanationReady returns a channel that is closed once the current
// explanation fetch resolves, or nil when no fetch is in flight. Callers
// that want to block on the fetch (the CLI does, tests do) select on it.
func (s *Session) ExplanationReady() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.explanationPending {
		return nil
	}
	return s.fetchDone
}

// Snapshot is an immutable view of session state for presentation layers.
type Snapshot struct {
	Phase          Phase
	Mode           Mode
	Position       int
	SequenceLength int
	Question       *Question
	SelectedOption *int
	Revealed       bool
	Score          int
	Finished       bool

	// Explanation is set only while the current question is revealed and
	// was answered incorrectly.
	Explanation        string
	ExplanationPending bool

	// ProgressPercent is the position within the quiz: a fraction of the
	// whole sequence in standard mode, a sawtooth over each batch in
	// unlimited mode (there is no natural total to measure against).
	ProgressPercent float64

	// FinalPercent is the rounded score percentage, meaningful once the
	// session is finished.
	FinalPercent int
}

// Snapshot returns a copy of the observable session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Phase:              s.phase,
		Mode:               s.mode,
		Position:           s.position,
		SequenceLength:     len(s.sequence),
		Revealed:           s.revealed,
		Score:              s.score,
		Finished:           s.phase == PhaseFinished,
		Explanation:        s.explanation,
		ExplanationPending: s.explanationPending,
	}
	if s.selectedOption != nil {
		picked := *s.selectedOption
		snap.SelectedOption = &picked
	}
	if s.phase != PhaseConfiguring && s.position < len(s.sequence) {
		question := s.sequence[s.position]
		snap.Question = &question
	}
	if s.phase == PhaseActive {
		snap.ProgressPercent = progressPercent(s.mode, s.position, len(s.sequence))
	}
	if s.phase == PhaseFinished && len(s.sequence) > 0 {
		snap.FinalPercent = int(math.Round(float64(s.score) / float64(len(s.sequence)) * 100))
	}
	return snap
}

func progressPercent(mode Mode, position, sequenceLength int) float64 {
	if mode == ModeUnlimited {
		return float64((position+1)%UnlimitedBatchSize) / UnlimitedBatchSize * 100
	}
	if sequenceLength == 0 {
		return 0
	}
	return float64(position+1) / float64(sequenceLength) * 100
}

// shuffled returns a uniform random permutation of questions without
// mutating the input.
func shuffled(questions []Question) []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// batchFrom draws up to size questions from a fresh shuffle of the pool.
func batchFrom(pool []Question, size int) []Question {
	batch := shuffled(pool)
	if size < len(batch) {
		batch = batch[:size]
	}
	return batch
}
