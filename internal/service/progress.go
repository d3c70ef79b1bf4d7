package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/remaimber-it/quizcore/internal/domain/progress"
	"github.com/remaimber-it/quizcore/internal/store"
)

// ProgressStore is the persistence used by ProgressTracker.
type ProgressStore interface {
	SaveProgress(ctx context.Context, p progress.Progress) error
	GetProgress(ctx context.Context, subjectID string) (*progress.Progress, error)
	ResetProgress(ctx context.Context, subjectID string) error
	GetProgressSummary(ctx context.Context, subjectID string) (progress.Summary, error)
}

// ProgressTracker keeps one resumption pointer per subject.
type ProgressTracker struct {
	store  ProgressStore
	logger *slog.Logger
}

func NewProgressTracker(s ProgressStore, logger *slog.Logger) *ProgressTracker {
	return &ProgressTracker{store: s, logger: logger}
}

// SaveProgress records that the question at currentIndex was reached, with
// percent (currentIndex+1)/totalQuestions.
func (pt *ProgressTracker) SaveProgress(ctx context.Context, subjectID string, currentIndex, totalQuestions int) error {
	p, err := progress.New(subjectID, currentIndex, totalQuestions)
	if err != nil {
		return err
	}
	return pt.store.SaveProgress(ctx, p)
}

// LoadLastProgress returns the saved index, or 0 for a subject never played.
func (pt *ProgressTracker) LoadLastProgress(ctx context.Context, subjectID string) (int, error) {
	p, err := pt.store.GetProgress(ctx, subjectID)
	if errors.Is(err, store.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return p.LastQuestionIndex, nil
}

func (pt *ProgressTracker) ResetProgress(ctx context.Context, subjectID string) error {
	if err := pt.store.ResetProgress(ctx, subjectID); err != nil {
		return err
	}
	pt.logger.Info("progress reset", "subject_id", subjectID)
	return nil
}

// Summary is zero-valued for a subject without progress.
func (pt *ProgressTracker) Summary(ctx context.Context, subjectID string) (progress.Summary, error) {
	return pt.store.GetProgressSummary(ctx, subjectID)
}
