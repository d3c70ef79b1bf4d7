package store

import (
	"context"
	"fmt"
)

// tableDDL holds the CREATE TABLE statement per table. Indexes live in
// indexDDL because they may name columns that migrate adds to older tables.
var tableDDL = map[Table]string{
	TableSubjects: `CREATE TABLE IF NOT EXISTS subjects (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '[]',
			difficulty TEXT NOT NULL DEFAULT '',
			version TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '[]',
			license TEXT NOT NULL DEFAULT '',
			num_questions INTEGER NOT NULL DEFAULT 0
		);`,
	TableQuestions: `CREATE TABLE IF NOT EXISTS questions (
			id INTEGER NOT NULL,
			subject_id TEXT NOT NULL,
			type TEXT NOT NULL,
			question_text TEXT NOT NULL,
			question_explanation TEXT NOT NULL DEFAULT '[]',
			choices TEXT,
			answer_text TEXT NOT NULL,
			answer_kind TEXT,
			answer_explanation TEXT NOT NULL DEFAULT '',
			weight REAL NOT NULL DEFAULT 1.0,
			tags TEXT NOT NULL DEFAULT '[]',
			position INTEGER NOT NULL DEFAULT 0,
			created_at_unix INTEGER NOT NULL,
			PRIMARY KEY (id, subject_id)
		);`,
	TableAnswers: `CREATE TABLE IF NOT EXISTS answers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			question_id INTEGER NOT NULL,
			subject_id TEXT NOT NULL,
			user_answer TEXT NOT NULL,
			is_correct INTEGER NOT NULL,
			answered_at_unix INTEGER NOT NULL
		);`,
	TableProgress: `CREATE TABLE IF NOT EXISTS progress (
			subject_id TEXT PRIMARY KEY,
			last_question_index INTEGER NOT NULL DEFAULT 0,
			progress_percent REAL NOT NULL DEFAULT 0
		);`,
}

var indexDDL = map[Table][]string{
	TableQuestions: {
		`CREATE INDEX IF NOT EXISTS idx_questions_subject_position ON questions(subject_id, position);`,
	},
	TableAnswers: {
		`CREATE INDEX IF NOT EXISTS idx_answers_subject_question ON answers(subject_id, question_id, answered_at_unix);`,
	},
}

// Initialize is the content factory reset: subjects and questions are
// dropped and recreated empty, while answers and progress are only created
// if absent so the answer history survives.
func (s *SQLiteStore) Initialize(ctx context.Context) error {
	if err := s.ResetTable(ctx, TableSubjects); err != nil {
		return err
	}
	if err := s.ResetTable(ctx, TableQuestions); err != nil {
		return err
	}
	for _, t := range []Table{TableAnswers, TableProgress} {
		if err := s.createTable(ctx, t); err != nil {
			return err
		}
	}
	if err := s.migrate(ctx); err != nil {
		return err
	}
	return s.createIndexes(ctx)
}

// ResetTable drops a table and recreates it empty, in one transaction.
func (s *SQLiteStore) ResetTable(ctx context.Context, t Table) error {
	ddl, ok := tableDDL[t]
	if !ok {
		return fmt.Errorf("unknown table %q", t)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return txFailed("reset "+string(t), err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+string(t)); err != nil {
		return txFailed("reset "+string(t), err)
	}
	for _, stmt := range append([]string{ddl}, indexDDL[t]...) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return txFailed("reset "+string(t), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return txFailed("reset "+string(t), err)
	}
	return nil
}

// RemoveTable drops a table without recreating it. Operations on the table
// fail until Initialize or ResetTable brings it back.
func (s *SQLiteStore) RemoveTable(ctx context.Context, t Table) error {
	if _, ok := tableDDL[t]; !ok {
		return fmt.Errorf("unknown table %q", t)
	}
	_, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+string(t))
	return err
}

// ResetAll resets questions, subjects and answers. Progress is left alone.
func (s *SQLiteStore) ResetAll(ctx context.Context) error {
	for _, t := range []Table{TableQuestions, TableSubjects, TableAnswers} {
		if err := s.ResetTable(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAll drops questions, subjects and answers.
func (s *SQLiteStore) RemoveAll(ctx context.Context) error {
	for _, t := range []Table{TableQuestions, TableSubjects, TableAnswers} {
		if err := s.RemoveTable(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) createTable(ctx context.Context, t Table) error {
	if _, err := s.db.ExecContext(ctx, tableDDL[t]); err != nil {
		return fmt.Errorf("create %s: %w", t, err)
	}
	return nil
}

// createIndexes runs after migrate so every indexed column exists.
func (s *SQLiteStore) createIndexes(ctx context.Context) error {
	for _, t := range []Table{TableSubjects, TableQuestions, TableAnswers, TableProgress} {
		for _, stmt := range indexDDL[t] {
			if _, err := s.db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("index %s: %w", t, err)
			}
		}
	}
	return nil
}
