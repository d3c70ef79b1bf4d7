package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/remaimber-it/quizcore/internal/domain/question"
	stagesession "github.com/remaimber-it/quizcore/internal/domain/stage_session"
	"github.com/remaimber-it/quizcore/internal/domain/subject"
	"github.com/remaimber-it/quizcore/internal/evaluator"
	"github.com/remaimber-it/quizcore/internal/metrics"
	"github.com/remaimber-it/quizcore/internal/store"
)

// ErrSessionNotFound matches store.ErrNotFound under errors.Is.
var ErrSessionNotFound = fmt.Errorf("practice session %w", store.ErrNotFound)

// PracticeStore is the persistence a practice session reads and appends to.
type PracticeStore interface {
	GetSubject(ctx context.Context, id string) (*subject.Subject, error)
	ListQuestions(ctx context.Context, subjectID string) ([]question.Question, error)
	GetWrongAnsweredQuestions(ctx context.Context, subjectID string) ([]question.Question, error)
	GetAnswerStats(ctx context.Context, subjectID string, questionIDs []int) ([]question.AnswerStats, error)
	SaveAnswer(ctx context.Context, a question.Answer) (int64, error)
}

// Action names a session transition other than answering.
type Action string

const (
	ActionAdvance      Action = "advance"
	ActionContinue     Action = "continue"
	ActionRetry        Action = "retry"
	ActionSkipNext     Action = "skip-next"
	ActionSkipPrevious Action = "skip-previous"
	ActionPrevious     Action = "previous"
)

func ParseAction(s string) (Action, bool) {
	switch a := Action(s); a {
	case ActionAdvance, ActionContinue, ActionRetry, ActionSkipNext, ActionSkipPrevious, ActionPrevious:
		return a, true
	}
	return "", false
}

// Snapshot is a session's state plus the question under the cursor, if any.
type Snapshot struct {
	State   stagesession.State
	Current *question.Question
}

// StageReport reads the answer log back for the questions of the current
// stage.
type StageReport struct {
	SessionID   string           `json:"session_id"`
	SubjectID   string           `json:"subject_id"`
	Stage       int              `json:"stage"`
	QuestionIDs []int            `json:"question_ids"`
	Answered    int              `json:"answered"`
	Correct     int              `json:"correct"` // questions whose latest answer is correct
	Questions   []QuestionReport `json:"questions"`
}

type liveSession struct {
	mu      sync.Mutex // serializes transitions
	session *stagesession.Session
}

// Practice holds the in-memory stage sessions.
type Practice struct {
	store            PracticeStore
	progress         stagesession.ProgressKeeper
	evaluator        evaluator.Evaluator
	metrics          *metrics.Metrics
	logger           *slog.Logger
	defaultStageSize int

	mu       sync.RWMutex
	sessions map[string]*liveSession
}

func NewPractice(s PracticeStore, progress stagesession.ProgressKeeper, ev evaluator.Evaluator, m *metrics.Metrics, logger *slog.Logger, defaultStageSize int) *Practice {
	if defaultStageSize < 1 {
		defaultStageSize = stagesession.DefaultStageSize
	}
	return &Practice{
		store:            s,
		progress:         progress,
		evaluator:        ev,
		metrics:          m,
		logger:           logger,
		defaultStageSize: defaultStageSize,
		sessions:         make(map[string]*liveSession),
	}
}

// Start opens a session on a subject. Normal mode walks every question in
// order and resumes from saved progress; wrong mode walks the questions
// last answered incorrectly. stageSize < 1 uses the configured default.
func (p *Practice) Start(ctx context.Context, subjectID string, mode stagesession.Mode, stageSize int) (Snapshot, error) {
	if _, err := p.store.GetSubject(ctx, subjectID); err != nil {
		return Snapshot{}, err
	}

	var (
		questions []question.Question
		err       error
	)
	if mode == stagesession.ModeWrong {
		questions, err = p.store.GetWrongAnsweredQuestions(ctx, subjectID)
	} else {
		questions, err = p.store.ListQuestions(ctx, subjectID)
	}
	if err != nil {
		return Snapshot{}, err
	}

	if stageSize < 1 {
		stageSize = p.defaultStageSize
	}
	cfg := stagesession.Config{StageSize: stageSize, Mode: mode}

	s := stagesession.New(subjectID, questions, cfg, stagesession.Deps{
		Answers:   p.store,
		Progress:  p.progress,
		Evaluator: p.evaluator,
		OnComplete: func(st stagesession.State) {
			p.metrics.SessionCompleted(string(st.Mode))
			p.logger.Info("session complete", "session_id", st.SessionID, "subject_id", st.SubjectID)
		},
	})
	if err := s.Start(ctx); err != nil {
		return Snapshot{}, err
	}

	p.mu.Lock()
	p.sessions[s.ID] = &liveSession{session: s}
	p.mu.Unlock()

	p.metrics.SessionStarted(string(s.Config().Mode))
	p.logger.Info("session started",
		"session_id", s.ID,
		"subject_id", subjectID,
		"mode", s.Config().Mode,
		"questions", len(questions),
	)
	return snapshot(s), nil
}

func (p *Practice) lookup(id string) (*liveSession, error) {
	p.mu.RLock()
	ls, ok := p.sessions[id]
	p.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return ls, nil
}

func snapshot(s *stagesession.Session) Snapshot {
	snap := Snapshot{State: s.State()}
	if q, err := s.Current(); err == nil {
		snap.Current = &q
	}
	return snap
}

func (p *Practice) Get(id string) (Snapshot, error) {
	ls, err := p.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return snapshot(ls.session), nil
}

// Submit answers the current question. A non-nil correct overrides the
// evaluator, for callers that already know the verdict.
func (p *Practice) Submit(ctx context.Context, id, answer string, correct *bool) (Snapshot, error) {
	ls, err := p.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()

	s := ls.session
	if correct != nil {
		err = s.SubmitJudged(ctx, answer, *correct)
	} else {
		_, err = s.SubmitAnswer(ctx, answer)
	}
	if err != nil {
		return Snapshot{}, err
	}

	st := s.State()
	p.metrics.AnswerRecorded(string(st.Mode), st.IsCorrect)
	return snapshot(s), nil
}

// Apply runs a navigation transition.
func (p *Practice) Apply(id string, action Action) (Snapshot, error) {
	ls, err := p.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()

	s := ls.session
	switch action {
	case ActionAdvance:
		err = s.Advance()
	case ActionContinue:
		err = s.ContinueToNextStage()
	case ActionRetry:
		err = s.RetryStage()
	case ActionSkipNext:
		err = s.SkipToNextStage()
	case ActionSkipPrevious:
		err = s.SkipToPreviousStage()
	case ActionPrevious:
		err = s.PreviousQuestion()
	default:
		err = fmt.Errorf("%w: unknown action %q", stagesession.ErrInvalidTransition, action)
	}
	if err != nil {
		return Snapshot{}, err
	}
	return snapshot(s), nil
}

func (p *Practice) StageReport(ctx context.Context, id string) (StageReport, error) {
	ls, err := p.lookup(id)
	if err != nil {
		return StageReport{}, err
	}

	ls.mu.Lock()
	s := ls.session
	ids, err := s.StageQuestionIDs()
	st := s.State()
	ls.mu.Unlock()
	if err != nil {
		return StageReport{}, err
	}

	stats, err := p.store.GetAnswerStats(ctx, s.SubjectID, ids)
	if err != nil {
		return StageReport{}, err
	}

	report := StageReport{
		SessionID:   s.ID,
		SubjectID:   s.SubjectID,
		Stage:       st.CurrentStage,
		QuestionIDs: ids,
		Questions:   make([]QuestionReport, 0, len(stats)),
	}
	for _, a := range stats {
		report.Questions = append(report.Questions, newQuestionReport(a))
		report.Answered++
		if a.LatestCorrect {
			report.Correct++
		}
	}
	return report, nil
}

// End forgets a session. Its answers and progress are already stored.
func (p *Practice) End(id string) error {
	p.mu.Lock()
	_, ok := p.sessions[id]
	delete(p.sessions, id)
	p.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	p.metrics.SessionEnded()
	p.logger.Info("session ended", "session_id", id)
	return nil
}
