package service

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/remaimber-it/quizcore/internal/domain/question"
	"github.com/remaimber-it/quizcore/internal/domain/subject"
)

// StatsStore is the read side used by StatsService.
type StatsStore interface {
	GetSubject(ctx context.Context, id string) (*subject.Subject, error)
	ListQuestions(ctx context.Context, subjectID string) ([]question.Question, error)
	ListAllQuestions(ctx context.Context) ([]question.Question, error)
	GetAnswerStats(ctx context.Context, subjectID string, questionIDs []int) ([]question.AnswerStats, error)
	GetWrongAnsweredQuestions(ctx context.Context, subjectID string) ([]question.Question, error)
}

// StatsService answers questions about the answer log.
type StatsService struct {
	store  StatsStore
	logger *slog.Logger

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewStatsService uses rng for weighted draws; nil seeds one from the clock.
func NewStatsService(s StatsStore, rng *rand.Rand, logger *slog.Logger) *StatsService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &StatsService{store: s, rng: rng, logger: logger}
}

// AnswerStats returns stats for the given questions of a subject. Questions
// never answered are omitted, so callers can tell them apart from a zero
// score. A nil questionIDs covers the whole subject.
func (ss *StatsService) AnswerStats(ctx context.Context, subjectID string, questionIDs []int) ([]question.AnswerStats, error) {
	return ss.store.GetAnswerStats(ctx, subjectID, questionIDs)
}

// WrongAnsweredQuestions returns the questions whose latest answer was wrong.
func (ss *StatsService) WrongAnsweredQuestions(ctx context.Context, subjectID string) ([]question.Question, error) {
	return ss.store.GetWrongAnsweredQuestions(ctx, subjectID)
}

// WeightedRandomQuestion draws one question with probability proportional
// to its weight. An empty subjectID draws from every subject. It returns
// nil, nil when there is nothing to draw from.
func (ss *StatsService) WeightedRandomQuestion(ctx context.Context, subjectID string) (*question.Question, error) {
	var (
		pool []question.Question
		err  error
	)
	if subjectID == "" {
		pool, err = ss.store.ListAllQuestions(ctx)
	} else {
		pool, err = ss.store.ListQuestions(ctx, subjectID)
	}
	if err != nil {
		return nil, err
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()
	return pickWeighted(pool, ss.rng), nil
}

// pickWeighted does cumulative threshold sampling: draw r in [0, total) and
// return the first question whose running weight sum reaches r. Questions
// with a non-positive weight are never drawn, unless every weight is
// non-positive, in which case the draw is uniform.
func pickWeighted(pool []question.Question, rng *rand.Rand) *question.Question {
	if len(pool) == 0 {
		return nil
	}

	total := 0.0
	for _, q := range pool {
		if q.Weight > 0 {
			total += q.Weight
		}
	}
	if total <= 0 {
		q := pool[rng.Intn(len(pool))]
		return &q
	}

	r := rng.Float64() * total
	cum := 0.0
	last := -1
	for i, q := range pool {
		if q.Weight <= 0 {
			continue
		}
		cum += q.Weight
		last = i
		if cum >= r {
			return &pool[i]
		}
	}
	// float rounding can leave cum a hair under r
	return &pool[last]
}

// QuestionReport is the stats line of one answered question.
type QuestionReport struct {
	QuestionID      int     `json:"question_id"`
	TotalAttempts   int     `json:"total_attempts"`
	CorrectAttempts int     `json:"correct_attempts"`
	LatestAnswer    string  `json:"latest_answer"`
	LatestCorrect   bool    `json:"latest_correct"`
	Accuracy        float64 `json:"accuracy"`
	Mastery         int     `json:"mastery"`
}

func newQuestionReport(st question.AnswerStats) QuestionReport {
	return QuestionReport{
		QuestionID:      st.QuestionID,
		TotalAttempts:   st.TotalAttempts,
		CorrectAttempts: st.CorrectAttempts,
		LatestAnswer:    st.LatestAnswer,
		LatestCorrect:   st.LatestCorrect,
		Accuracy:        st.Accuracy(),
		Mastery:         st.Mastery(),
	}
}

// SubjectReport rolls the answer log of a subject up.
type SubjectReport struct {
	SubjectID         string           `json:"subject_id"`
	Title             string           `json:"title"`
	TotalQuestions    int              `json:"total_questions"`
	AnsweredQuestions int              `json:"answered_questions"`
	TotalAttempts     int              `json:"total_attempts"`
	CorrectAttempts   int              `json:"correct_attempts"`
	Accuracy          float64          `json:"accuracy"`
	Mastery           int              `json:"mastery"` // average over all questions, unanswered count as 0
	Questions         []QuestionReport `json:"questions"`
}

func (ss *StatsService) SubjectReport(ctx context.Context, subjectID string) (SubjectReport, error) {
	sub, err := ss.store.GetSubject(ctx, subjectID)
	if err != nil {
		return SubjectReport{}, err
	}
	questions, err := ss.store.ListQuestions(ctx, subjectID)
	if err != nil {
		return SubjectReport{}, err
	}
	stats, err := ss.store.GetAnswerStats(ctx, subjectID, nil)
	if err != nil {
		return SubjectReport{}, err
	}

	report := SubjectReport{
		SubjectID:      sub.ID,
		Title:          sub.Title,
		TotalQuestions: len(questions),
		Questions:      make([]QuestionReport, 0, len(stats)),
	}

	current := make(map[int]bool, len(questions))
	for _, q := range questions {
		current[q.ID] = true
	}

	masterySum := 0
	for _, st := range stats {
		// answers can outlive their question after a re-import
		if !current[st.QuestionID] {
			continue
		}
		qr := newQuestionReport(st)
		report.Questions = append(report.Questions, qr)
		report.AnsweredQuestions++
		report.TotalAttempts += st.TotalAttempts
		report.CorrectAttempts += st.CorrectAttempts
		masterySum += qr.Mastery
	}

	if report.TotalAttempts > 0 {
		report.Accuracy = float64(report.CorrectAttempts) / float64(report.TotalAttempts)
	}
	if report.TotalQuestions > 0 {
		report.Mastery = masterySum / report.TotalQuestions
	}
	return report, nil
}
