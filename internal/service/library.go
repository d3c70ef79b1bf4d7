package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/remaimber-it/quizcore/internal/catalog"
	"github.com/remaimber-it/quizcore/internal/domain/question"
	"github.com/remaimber-it/quizcore/internal/domain/subject"
	"github.com/remaimber-it/quizcore/internal/store"
	"github.com/remaimber-it/quizcore/internal/validation"
)

// LibraryStore is the subject and question persistence used by Library.
type LibraryStore interface {
	ReplaceQuestions(ctx context.Context, sub *subject.Subject, questions []question.Question) error
	DeleteSubject(ctx context.Context, id string) error
	GetSubject(ctx context.Context, id string) (*subject.Subject, error)
	ListSubjects(ctx context.Context) ([]*subject.Subject, error)
	ListQuestions(ctx context.Context, subjectID string) ([]question.Question, error)
	UpdateQuestionTags(ctx context.Context, subjectID string, id int, tags []string) error
	ResetTable(ctx context.Context, t store.Table) error
	RemoveTable(ctx context.Context, t store.Table) error
	ResetAll(ctx context.Context) error
	RemoveAll(ctx context.Context) error
}

// Library manages subjects explicitly, as opposed to catalog sync.
type Library struct {
	store  LibraryStore
	logger *slog.Logger
	now    func() time.Time
}

func NewLibrary(s LibraryStore, logger *slog.Logger) *Library {
	return &Library{
		store:  s,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ImportSubject replaces the subject's questions with the file's, all or
// nothing. Unlike sync, any malformed or duplicate question rejects the
// whole file before anything is written.
func (l *Library) ImportSubject(ctx context.Context, subjectID string, f catalog.QuestionFile) (*subject.Subject, error) {
	if err := validation.Struct(f); err != nil {
		return nil, err
	}

	createdAt := l.now()
	questions := make([]question.Question, 0, len(f.Questions))
	seen := make(map[int]bool, len(f.Questions))
	for i, fq := range f.Questions {
		q, err := fq.ToQuestion(subjectID, createdAt)
		if err != nil {
			return nil, fmt.Errorf("question at index %d: %w", i, err)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("%w: duplicate question id %d", catalog.ErrMalformedRecord, q.ID)
		}
		seen[q.ID] = true
		questions = append(questions, q)
	}

	sub, err := f.ToSubject(subjectID, "", len(questions))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrMalformedRecord, err)
	}
	if err := l.store.ReplaceQuestions(ctx, sub, questions); err != nil {
		return nil, err
	}

	l.logger.Info("subject imported", "subject_id", subjectID, "questions", len(questions))
	return sub, nil
}

// DeleteSubject removes the subject with its questions, answers and progress.
func (l *Library) DeleteSubject(ctx context.Context, subjectID string) error {
	if err := l.store.DeleteSubject(ctx, subjectID); err != nil {
		return err
	}
	l.logger.Info("subject deleted", "subject_id", subjectID)
	return nil
}

func (l *Library) ExportSubject(ctx context.Context, subjectID string) (catalog.QuestionFile, error) {
	sub, err := l.store.GetSubject(ctx, subjectID)
	if err != nil {
		return catalog.QuestionFile{}, err
	}
	questions, err := l.store.ListQuestions(ctx, subjectID)
	if err != nil {
		return catalog.QuestionFile{}, err
	}
	return catalog.Export(sub, questions), nil
}

func (l *Library) ListSubjects(ctx context.Context) ([]*subject.Subject, error) {
	return l.store.ListSubjects(ctx)
}

func (l *Library) GetSubject(ctx context.Context, subjectID string) (*subject.Subject, error) {
	return l.store.GetSubject(ctx, subjectID)
}

// ListQuestions returns ErrNotFound for an unknown subject rather than an
// empty list.
func (l *Library) ListQuestions(ctx context.Context, subjectID string) ([]question.Question, error) {
	if _, err := l.store.GetSubject(ctx, subjectID); err != nil {
		return nil, err
	}
	return l.store.ListQuestions(ctx, subjectID)
}

func (l *Library) UpdateQuestionTags(ctx context.Context, subjectID string, questionID int, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	return l.store.UpdateQuestionTags(ctx, subjectID, questionID, tags)
}

// ResetTargetAll makes Reset cover questions, subjects and answers.
const ResetTargetAll = "all"

// Reset drops the target table(s) and, unless drop is set, recreates
// them empty.
func (l *Library) Reset(ctx context.Context, target string, drop bool) error {
	var err error
	if target == ResetTargetAll {
		if drop {
			err = l.store.RemoveAll(ctx)
		} else {
			err = l.store.ResetAll(ctx)
		}
	} else {
		t, ok := store.ParseTable(target)
		if !ok {
			return fmt.Errorf("%w: unknown reset target %q", validation.ErrInvalid, target)
		}
		if drop {
			err = l.store.RemoveTable(ctx, t)
		} else {
			err = l.store.ResetTable(ctx, t)
		}
	}
	if err != nil {
		return err
	}

	l.logger.Warn("tables reset", "target", target, "drop", drop)
	return nil
}
