package store

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrTxFailed wraps any failure inside a multi-statement write. The
	// transaction has been rolled back when it is returned.
	ErrTxFailed = errors.New("transaction failed")
)

// Table names a content or history table for the reset/remove operations.
type Table string

const (
	TableSubjects  Table = "subjects"
	TableQuestions Table = "questions"
	TableAnswers   Table = "answers"
	TableProgress  Table = "progress"
)

// ParseTable accepts the names of the tables that can be reset on their own.
func ParseTable(name string) (Table, bool) {
	switch t := Table(name); t {
	case TableSubjects, TableQuestions, TableAnswers:
		return t, true
	}
	return "", false
}
