package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/remaimber-it/quizcore/internal/domain/progress"
)

// SaveProgress upserts the single progress row of a subject.
func (s *SQLiteStore) SaveProgress(ctx context.Context, p progress.Progress) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO progress (subject_id, last_question_index, progress_percent)
		 VALUES (?, ?, ?)
		 ON CONFLICT(subject_id) DO UPDATE SET
			last_question_index = excluded.last_question_index,
			progress_percent = excluded.progress_percent`,
		p.SubjectID, p.LastQuestionIndex, p.ProgressPercent,
	)
	return err
}

// GetProgress returns ErrNotFound when the subject was never answered.
func (s *SQLiteStore) GetProgress(ctx context.Context, subjectID string) (*progress.Progress, error) {
	var p progress.Progress
	err := s.db.QueryRowContext(ctx,
		"SELECT subject_id, last_question_index, progress_percent FROM progress WHERE subject_id = ?",
		subjectID,
	).Scan(&p.SubjectID, &p.LastQuestionIndex, &p.ProgressPercent)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ResetProgress zeroes the row in place; the row itself stays.
func (s *SQLiteStore) ResetProgress(ctx context.Context, subjectID string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE progress SET last_question_index = 0, progress_percent = 0 WHERE subject_id = ?",
		subjectID,
	)
	return err
}

// GetProgressSummary joins progress with the subject's question count.
// Every field is zero when no progress row exists yet.
func (s *SQLiteStore) GetProgressSummary(ctx context.Context, subjectID string) (progress.Summary, error) {
	var sum progress.Summary
	err := s.db.QueryRowContext(ctx,
		`SELECT p.last_question_index, p.progress_percent, COALESCE(s.num_questions, 0)
		 FROM progress p
		 LEFT JOIN subjects s ON s.id = p.subject_id
		 WHERE p.subject_id = ?`,
		subjectID,
	).Scan(&sum.LastIndex, &sum.Percent, &sum.Total)
	if errors.Is(err, sql.ErrNoRows) {
		return progress.Summary{}, nil
	}
	if err != nil {
		return progress.Summary{}, err
	}
	return sum, nil
}
