package stagesession

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/remaimber-it/quizcore/internal/domain/question"
	"github.com/remaimber-it/quizcore/internal/evaluator"
	"github.com/remaimber-it/quizcore/internal/id"
)

var (
	ErrNoQuestions       = errors.New("session has no questions")
	ErrNotStarted        = errors.New("session not started")
	ErrInvalidTransition = errors.New("transition not allowed in current state")
	ErrSessionComplete   = errors.New("session is complete")
)

// AnswerRecorder appends answer events to the log.
type AnswerRecorder interface {
	SaveAnswer(ctx context.Context, a question.Answer) (int64, error)
}

// ProgressKeeper owns the per-subject resumption pointer.
type ProgressKeeper interface {
	LoadLastProgress(ctx context.Context, subjectID string) (int, error)
	SaveProgress(ctx context.Context, subjectID string, index, total int) error
}

// Deps are the collaborators of a session. Evaluator defaults to matching
// the question's answer key, Now to the wall clock.
type Deps struct {
	Answers    AnswerRecorder
	Progress   ProgressKeeper
	Evaluator  evaluator.Evaluator
	OnComplete func(State)
	Now        func() time.Time
}

// Session walks an ordered question list of one subject in fixed-size
// stages. It lives in memory only and is not safe for concurrent use:
// callers serialize transitions.
type Session struct {
	ID        string
	SubjectID string
	Questions []question.Question

	config Config
	deps   Deps

	started        bool
	index          int
	isAnswered     bool
	isCorrect      bool
	isStageSummary bool
	isComplete     bool
}

// New builds an unstarted session over questions, which are used in the
// given order.
func New(subjectID string, questions []question.Question, cfg Config, deps Deps) *Session {
	if deps.Evaluator == nil {
		deps.Evaluator = evaluator.KeyEvaluator{}
	}
	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Now().UTC() }
	}

	qs := make([]question.Question, len(questions))
	copy(qs, questions)

	return &Session{
		ID:        id.GenerateID(),
		SubjectID: subjectID,
		Questions: qs,
		config:    cfg.normalized(),
		deps:      deps,
	}
}

func (s *Session) Config() Config { return s.config }

func (s *Session) total() int { return len(s.Questions) }

// Start positions the session. Wrong mode always starts at the first
// question. Normal mode resumes from the saved index, clamped to the last
// question so a shrunken subject still resumes near the end.
func (s *Session) Start(ctx context.Context) error {
	if s.started {
		return fmt.Errorf("%w: already started", ErrInvalidTransition)
	}

	start := 0
	if s.config.Mode == ModeNormal && s.total() > 0 {
		saved, err := s.deps.Progress.LoadLastProgress(ctx, s.SubjectID)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		start = max(min(saved, s.total()-1), 0)
	}

	s.started = true
	s.index = start
	return nil
}

// ready guards every transition after Start.
func (s *Session) ready() error {
	switch {
	case !s.started:
		return ErrNotStarted
	case s.total() == 0:
		return ErrNoQuestions
	case s.isComplete:
		return ErrSessionComplete
	}
	return nil
}

func (s *Session) moveTo(index int) {
	s.index = index
	s.isAnswered = false
	s.isCorrect = false
	s.isStageSummary = false
}

func (s *Session) complete() {
	s.isComplete = true
	if s.deps.OnComplete != nil {
		s.deps.OnComplete(s.State())
	}
}

// Current returns the question at the cursor.
func (s *Session) Current() (question.Question, error) {
	if err := s.ready(); err != nil && !errors.Is(err, ErrSessionComplete) {
		return question.Question{}, err
	}
	return s.Questions[s.index], nil
}

// SubmitAnswer judges userAnswer with the session's evaluator and records it.
func (s *Session) SubmitAnswer(ctx context.Context, userAnswer string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	correct := s.deps.Evaluator.Evaluate(s.Questions[s.index], userAnswer)
	return correct, s.SubmitJudged(ctx, userAnswer, correct)
}

// SubmitJudged records an answer whose correctness the caller already knows,
// as a choice UI does. Answering again appends another event.
func (s *Session) SubmitJudged(ctx context.Context, userAnswer string, correct bool) error {
	if err := s.ready(); err != nil {
		return err
	}
	if s.isStageSummary {
		return fmt.Errorf("%w: cannot answer during stage summary", ErrInvalidTransition)
	}

	q := s.Questions[s.index]
	if _, err := s.deps.Answers.SaveAnswer(ctx, question.NewAnswer(q, userAnswer, correct, s.deps.Now())); err != nil {
		return fmt.Errorf("save answer: %w", err)
	}
	s.isAnswered = true
	s.isCorrect = correct

	if s.config.Mode == ModeNormal {
		if err := s.deps.Progress.SaveProgress(ctx, s.SubjectID, s.index, s.total()); err != nil {
			return fmt.Errorf("save progress: %w", err)
		}
	}
	return nil
}

// Advance moves past the current question. The last question of the set
// completes the session even when it also ends a stage.
func (s *Session) Advance() error {
	if err := s.ready(); err != nil {
		return err
	}
	if s.isStageSummary {
		return fmt.Errorf("%w: continue or retry the stage", ErrInvalidTransition)
	}

	switch {
	case s.index == s.total()-1:
		s.complete()
	case IsStageBoundary(s.index, s.config.StageSize):
		s.isStageSummary = true
	default:
		s.moveTo(s.index + 1)
	}
	return nil
}

// ContinueToNextStage leaves the stage summary for the next stage's first
// question.
func (s *Session) ContinueToNextStage() error {
	if err := s.ready(); err != nil {
		return err
	}
	if !s.isStageSummary {
		return fmt.Errorf("%w: not at a stage summary", ErrInvalidTransition)
	}
	s.moveTo(s.index + 1)
	return nil
}

// RetryStage goes back to the first question of the current stage. Answers
// already recorded stay in the log.
func (s *Session) RetryStage() error {
	if err := s.ready(); err != nil {
		return err
	}
	s.moveTo(StageStart(s.index, s.config.StageSize))
	return nil
}

func (s *Session) SkipToNextStage() error {
	if err := s.ready(); err != nil {
		return err
	}
	end := StageEnd(s.index, s.config.StageSize, s.total())
	if end >= s.total() {
		s.complete()
		return nil
	}
	s.moveTo(end)
	return nil
}

func (s *Session) SkipToPreviousStage() error {
	if err := s.ready(); err != nil {
		return err
	}
	s.moveTo(max(StageStart(s.index, s.config.StageSize)-s.config.StageSize, 0))
	return nil
}

// PreviousQuestion is a no-op on the first question.
func (s *Session) PreviousQuestion() error {
	if err := s.ready(); err != nil {
		return err
	}
	if s.index == 0 {
		return nil
	}
	s.moveTo(s.index - 1)
	return nil
}

// StageQuestionIDs lists the question ids of the current stage.
func (s *Session) StageQuestionIDs() ([]int, error) {
	if err := s.ready(); err != nil && !errors.Is(err, ErrSessionComplete) {
		return nil, err
	}
	start := StageStart(s.index, s.config.StageSize)
	end := StageEnd(s.index, s.config.StageSize, s.total())
	ids := make([]int, 0, end-start)
	for _, q := range s.Questions[start:end] {
		ids = append(ids, q.ID)
	}
	return ids, nil
}
