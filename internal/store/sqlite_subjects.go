package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/remaimber-it/quizcore/internal/domain/subject"
)

const subjectColumns = `id, title, description, category, difficulty, version, created_at, updated_at,
	author, source, tags, license, num_questions`

const upsertSubject = `INSERT INTO subjects (` + subjectColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		title = excluded.title,
		description = excluded.description,
		category = excluded.category,
		difficulty = excluded.difficulty,
		version = excluded.version,
		created_at = excluded.created_at,
		updated_at = excluded.updated_at,
		author = excluded.author,
		source = excluded.source,
		tags = excluded.tags,
		license = excluded.license,
		num_questions = excluded.num_questions`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func subjectArgs(sub *subject.Subject) []any {
	return []any{
		sub.ID, sub.Title, sub.Description, encodeStrings(sub.Category), sub.Difficulty, sub.Version,
		sub.CreatedAt, sub.UpdatedAt, sub.Author, sub.Source, encodeStrings(sub.Tags), sub.License,
		sub.NumQuestions,
	}
}

// SaveSubject inserts the subject or updates it in place on re-sync.
func (s *SQLiteStore) SaveSubject(ctx context.Context, sub *subject.Subject) error {
	return saveSubject(ctx, s.db, sub)
}

func saveSubject(ctx context.Context, e execer, sub *subject.Subject) error {
	_, err := e.ExecContext(ctx, upsertSubject, subjectArgs(sub)...)
	return err
}

func (s *SQLiteStore) GetSubject(ctx context.Context, id string) (*subject.Subject, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+subjectColumns+" FROM subjects WHERE id = ?", id)
	sub, err := scanSubject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SQLiteStore) ListSubjects(ctx context.Context) ([]*subject.Subject, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+subjectColumns+" FROM subjects ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := make([]*subject.Subject, 0)
	for rows.Next() {
		sub, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, sub)
	}
	return subjects, rows.Err()
}

// DeleteSubject removes the subject with all of its questions, answers and
// progress, or nothing at all. An unknown subject is ErrNotFound.
func (s *SQLiteStore) DeleteSubject(ctx context.Context, id string) error {
	return s.deleteSubject(ctx, id, true)
}

// PurgeSubject is DeleteSubject for ids that may only survive as leftover
// questions or history; a missing subject row is not an error.
func (s *SQLiteStore) PurgeSubject(ctx context.Context, id string) error {
	return s.deleteSubject(ctx, id, false)
}

func (s *SQLiteStore) deleteSubject(ctx context.Context, id string, mustExist bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return txFailed("delete subject", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM answers WHERE subject_id = ?",
		"DELETE FROM progress WHERE subject_id = ?",
		"DELETE FROM questions WHERE subject_id = ?",
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return txFailed("delete subject", err)
		}
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM subjects WHERE id = ?", id)
	if err != nil {
		return txFailed("delete subject", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return txFailed("delete subject", err)
	}
	if rowsAffected == 0 && mustExist {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return txFailed("delete subject", err)
	}
	return nil
}

// RemoveSubjectContent deletes a subject's questions and its subject row but
// keeps its answers and progress. Catalog sync uses it for subjects that
// left the catalog.
func (s *SQLiteStore) RemoveSubjectContent(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return txFailed("remove subject content", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM questions WHERE subject_id = ?", id); err != nil {
		return txFailed("remove subject content", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM subjects WHERE id = ?", id); err != nil {
		return txFailed("remove subject content", err)
	}

	if err := tx.Commit(); err != nil {
		return txFailed("remove subject content", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubject(sc scanner) (*subject.Subject, error) {
	var sub subject.Subject
	var category, tags string
	err := sc.Scan(
		&sub.ID, &sub.Title, &sub.Description, &category, &sub.Difficulty, &sub.Version,
		&sub.CreatedAt, &sub.UpdatedAt, &sub.Author, &sub.Source, &tags, &sub.License,
		&sub.NumQuestions,
	)
	if err != nil {
		return nil, err
	}
	sub.Category = decodeStrings(category)
	sub.Tags = decodeStrings(tags)
	return &sub, nil
}
