package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/remaimber-it/quizcore/internal/domain/question"
	"github.com/remaimber-it/quizcore/internal/domain/subject"
)

// Repository is the slice of the store the synchronizer writes through.
type Repository interface {
	DistinctQuestionSubjectIDs(ctx context.Context) ([]string, error)
	ListSubjects(ctx context.Context) ([]*subject.Subject, error)
	RemoveSubjectContent(ctx context.Context, id string) error
	PurgeSubject(ctx context.Context, id string) error
	SaveSubject(ctx context.Context, sub *subject.Subject) error
	InsertQuestion(ctx context.Context, q question.Question, position int) error
}

// Report lists what one Sync run did, by subject id.
type Report struct {
	Added     []string `json:"added"`
	Removed   []string `json:"removed"`
	Unchanged []string `json:"unchanged"`
	// Skipped counts question records dropped as malformed.
	Skipped int `json:"skipped"`
}

// Synchronizer reconciles the store with a catalog. Subjects are compared
// by id only: a subject already holding questions is left untouched even if
// its catalog file changed.
type Synchronizer struct {
	repo         Repository
	logger       *slog.Logger
	purgeHistory bool
	now          func() time.Time
}

// NewSynchronizer builds a synchronizer. With purgeHistory set, subjects
// that left the catalog lose their answers and progress too; otherwise that
// history is kept for a later re-addition.
func NewSynchronizer(repo Repository, logger *slog.Logger, purgeHistory bool) *Synchronizer {
	return &Synchronizer{
		repo:         repo,
		logger:       logger,
		purgeHistory: purgeHistory,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Sync is best-effort: each subject is written on its own, and a malformed
// question is logged and skipped rather than failing the run. An error
// leaves whatever was already written in place.
func (s *Synchronizer) Sync(ctx context.Context, cat Catalog) (Report, error) {
	existingIDs, err := s.repo.DistinctQuestionSubjectIDs(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("list stored subjects: %w", err)
	}
	existing := make(map[string]bool, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = true
	}

	report := Report{Added: []string{}, Removed: []string{}, Unchanged: []string{}}

	// A subject row without questions (every record was malformed) is
	// removed too once its key leaves the catalog.
	subjects, err := s.repo.ListSubjects(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("list stored subjects: %w", err)
	}
	stale := make([]string, 0, len(existingIDs))
	seen := make(map[string]bool, len(existingIDs)+len(subjects))
	for _, id := range existingIDs {
		seen[id] = true
		stale = append(stale, id)
	}
	for _, sub := range subjects {
		if !seen[sub.ID] {
			seen[sub.ID] = true
			stale = append(stale, sub.ID)
		}
	}

	for _, id := range stale {
		if _, ok := cat[id]; ok {
			continue
		}
		if s.purgeHistory {
			err = s.repo.PurgeSubject(ctx, id)
		} else {
			err = s.repo.RemoveSubjectContent(ctx, id)
		}
		if err != nil {
			return report, fmt.Errorf("remove subject %s: %w", id, err)
		}
		report.Removed = append(report.Removed, id)
		s.logger.Info("subject removed from store", "subject_id", id, "purge_history", s.purgeHistory)
	}

	for _, key := range cat.Keys() {
		if existing[key] {
			report.Unchanged = append(report.Unchanged, key)
			continue
		}
		skipped, err := s.insertSubject(ctx, key, cat[key])
		report.Skipped += skipped
		if err != nil {
			return report, fmt.Errorf("insert subject %s: %w", key, err)
		}
		report.Added = append(report.Added, key)
	}

	s.logger.Info("catalog synchronized",
		"added", len(report.Added),
		"removed", len(report.Removed),
		"unchanged", len(report.Unchanged),
		"skipped_questions", report.Skipped,
	)
	return report, nil
}

func (s *Synchronizer) insertSubject(ctx context.Context, key string, entry Entry) (int, error) {
	createdAt := s.now()

	questions := make([]question.Question, 0, len(entry.File.Questions))
	seen := make(map[int]bool, len(entry.File.Questions))
	skipped := 0
	for i, fq := range entry.File.Questions {
		q, err := fq.ToQuestion(key, createdAt)
		if err != nil {
			s.logger.Warn("skipping malformed question", "subject_id", key, "index", i, "error", err)
			skipped++
			continue
		}
		if seen[q.ID] {
			s.logger.Warn("skipping duplicate question id", "subject_id", key, "index", i, "question_id", q.ID)
			skipped++
			continue
		}
		seen[q.ID] = true
		questions = append(questions, q)
	}

	sub, err := entry.File.ToSubject(key, entry.DisplayName, len(questions))
	if err != nil {
		return skipped, err
	}
	if err := s.repo.SaveSubject(ctx, sub); err != nil {
		return skipped, err
	}

	for pos, q := range questions {
		if err := s.repo.InsertQuestion(ctx, q, pos); err != nil {
			return skipped, fmt.Errorf("question %d: %w", q.ID, err)
		}
	}

	s.logger.Info("subject added", "subject_id", key, "questions", len(questions), "skipped", skipped)
	return skipped, nil
}
