package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/remaimber-it/quizcore/internal/domain/question"
)

// latestAnswerID picks the most recent answer row of question q; ties on
// the timestamp go to the later insert.
const latestAnswerID = `SELECT l.id FROM answers l
	WHERE l.subject_id = q.subject_id AND l.question_id = q.id
	ORDER BY l.answered_at_unix DESC, l.id DESC LIMIT 1`

// SaveAnswer appends one submission to the answer log. The referenced
// question must exist in its subject.
func (s *SQLiteStore) SaveAnswer(ctx context.Context, a question.Answer) (int64, error) {
	var found int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM questions WHERE subject_id = ? AND id = ?",
		a.SubjectID, a.QuestionID,
	).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	answeredAt := a.AnsweredAt
	if answeredAt.IsZero() {
		answeredAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO answers (question_id, subject_id, user_answer, is_correct, answered_at_unix)
		 VALUES (?, ?, ?, ?, ?)`,
		a.QuestionID, a.SubjectID, a.UserAnswer, a.IsCorrect, answeredAt.UnixNano(),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListAnswers returns a subject's answer log, oldest first.
func (s *SQLiteStore) ListAnswers(ctx context.Context, subjectID string) ([]question.Answer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, question_id, subject_id, user_answer, is_correct, answered_at_unix
		 FROM answers WHERE subject_id = ? ORDER BY answered_at_unix, id`,
		subjectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := make([]question.Answer, 0)
	for rows.Next() {
		var a question.Answer
		var answeredAt int64
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.SubjectID, &a.UserAnswer, &a.IsCorrect, &answeredAt); err != nil {
			return nil, err
		}
		a.AnsweredAt = time.Unix(0, answeredAt).UTC()
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

// GetAnswerStats aggregates the answer log for the given questions of a
// subject. Questions without any answer are absent from the result, which
// is ordered by question id. A nil questionIDs means every question.
func (s *SQLiteStore) GetAnswerStats(ctx context.Context, subjectID string, questionIDs []int) ([]question.AnswerStats, error) {
	if questionIDs != nil && len(questionIDs) == 0 {
		return []question.AnswerStats{}, nil
	}

	query := `SELECT a.question_id, COUNT(*), SUM(a.is_correct),
			l.user_answer, l.is_correct
		FROM answers a
		JOIN answers l ON l.id = (
			SELECT x.id FROM answers x
			WHERE x.subject_id = a.subject_id AND x.question_id = a.question_id
			ORDER BY x.answered_at_unix DESC, x.id DESC LIMIT 1
		)
		WHERE a.subject_id = ?`
	args := []any{subjectID}

	if questionIDs != nil {
		query += " AND a.question_id IN (?" + strings.Repeat(", ?", len(questionIDs)-1) + ")"
		for _, id := range questionIDs {
			args = append(args, id)
		}
	}
	query += " GROUP BY a.question_id ORDER BY a.question_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]question.AnswerStats, 0)
	for rows.Next() {
		var st question.AnswerStats
		if err := rows.Scan(&st.QuestionID, &st.TotalAttempts, &st.CorrectAttempts, &st.LatestAnswer, &st.LatestCorrect); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// GetWrongAnsweredQuestions returns the subject's questions whose most
// recent answer was incorrect, in insertion order. Unanswered questions
// are not included.
func (s *SQLiteStore) GetWrongAnsweredQuestions(ctx context.Context, subjectID string) ([]question.Question, error) {
	return s.queryQuestions(ctx,
		`SELECT `+prefixColumns(questionColumns, "q")+`
		FROM questions q
		JOIN answers a ON a.id = (`+latestAnswerID+`)
		WHERE q.subject_id = ? AND a.is_correct = 0
		ORDER BY q.position, q.id`,
		subjectID,
	)
}

func prefixColumns(cols, alias string) string {
	parts := strings.Split(cols, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
