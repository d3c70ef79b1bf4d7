// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteStore is the only writer of the subjects/questions/answers/progress
// graph. Every cross-table invariant (answers reference an existing
// question, subject deletion cascades) is enforced here rather than by
// storage-level foreign keys, so each table can be reset on its own.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at dbPath and makes sure every
// table exists. It never drops anything; see Initialize for the content reset.
// ":memory:" gives an isolated database per store.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		dbPath = "quizcore.db"
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Single connection: one logical writer, and ":memory:" stays one database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks the connection, used by the health endpoint.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	for _, t := range []Table{TableSubjects, TableQuestions, TableAnswers, TableProgress} {
		if err := s.createTable(ctx, t); err != nil {
			return err
		}
	}
	if err := s.migrate(ctx); err != nil {
		return err
	}
	return s.createIndexes(ctx)
}

// migrate applies additive column changes to databases created by older builds.
func (s *SQLiteStore) migrate(ctx context.Context) error {
	if err := addColumnIfNotExists(ctx, s.db, "questions", "answer_kind", "TEXT"); err != nil {
		return err
	}
	return addColumnIfNotExists(ctx, s.db, "questions", "position", "INTEGER NOT NULL DEFAULT 0")
}

func addColumnIfNotExists(ctx context.Context, db *sql.DB, table, column, definition string) error {
	rows, err := db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return err
	}
	found := false
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return err
		}
		if name == column {
			found = true
		}
	}
	if err := rows.Close(); err != nil {
		return err
	}
	if found {
		return nil
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))
	return err
}

// txFailed marks err as a rolled-back transaction failure.
func txFailed(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrTxFailed, op, err)
}

func encodeStrings(v []string) string {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func decodeStrings(raw string) []string {
	out := []string{}
	if raw == "" {
		return out
	}
	_ = json.Unmarshal([]byte(raw), &out)
	return out
}
