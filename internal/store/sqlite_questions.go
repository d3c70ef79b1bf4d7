package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/remaimber-it/quizcore/internal/domain/question"
	"github.com/remaimber-it/quizcore/internal/domain/subject"
)

const questionColumns = `id, subject_id, type, question_text, question_explanation, choices,
	answer_text, answer_kind, answer_explanation, weight, tags, created_at_unix`

const insertQuestion = `INSERT INTO questions (` + questionColumns + `, position)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

type storedChoice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func questionArgs(q question.Question, position int) []any {
	var choices sql.NullString
	if q.Choices != nil {
		sc := make([]storedChoice, len(q.Choices))
		for i, c := range q.Choices {
			sc[i] = storedChoice{ID: c.ID, Text: c.Text}
		}
		b, _ := json.Marshal(sc)
		choices = sql.NullString{String: string(b), Valid: true}
	}

	weight := q.Weight
	if weight == 0 {
		weight = question.DefaultWeight
	}
	createdAt := q.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	answerText, answerKind := q.Answer.Encode()

	return []any{
		q.ID, q.SubjectID, string(q.Type), q.Text, encodeStrings(q.Explanation), choices,
		answerText, string(answerKind), q.AnswerExplanation, weight, encodeStrings(q.Tags),
		createdAt.UnixNano(), position,
	}
}

// ReplaceQuestions is the strict import path: the subject is upserted, its
// previous questions are deleted and the new list is inserted, all in one
// transaction. Any failure leaves the previous state untouched.
func (s *SQLiteStore) ReplaceQuestions(ctx context.Context, sub *subject.Subject, questions []question.Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return txFailed("replace questions", err)
	}
	defer tx.Rollback()

	if err := saveSubject(ctx, tx, sub); err != nil {
		return txFailed("replace questions", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM questions WHERE subject_id = ?", sub.ID); err != nil {
		return txFailed("replace questions", err)
	}

	for i, q := range questions {
		q.SubjectID = sub.ID
		if _, err := tx.ExecContext(ctx, insertQuestion, questionArgs(q, i)...); err != nil {
			return txFailed("replace questions", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return txFailed("replace questions", err)
	}
	return nil
}

// InsertQuestion writes a single question outside any transaction.
// position fixes its place in the subject's iteration order.
func (s *SQLiteStore) InsertQuestion(ctx context.Context, q question.Question, position int) error {
	_, err := s.db.ExecContext(ctx, insertQuestion, questionArgs(q, position)...)
	return err
}

// ListQuestions returns a subject's questions in insertion order.
func (s *SQLiteStore) ListQuestions(ctx context.Context, subjectID string) ([]question.Question, error) {
	return s.queryQuestions(ctx,
		"SELECT "+questionColumns+" FROM questions WHERE subject_id = ? ORDER BY position, id",
		subjectID,
	)
}

// ListAllQuestions returns the whole question pool, grouped by subject.
func (s *SQLiteStore) ListAllQuestions(ctx context.Context) ([]question.Question, error) {
	return s.queryQuestions(ctx,
		"SELECT "+questionColumns+" FROM questions ORDER BY subject_id, position, id",
	)
}

func (s *SQLiteStore) GetQuestion(ctx context.Context, subjectID string, id int) (*question.Question, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+questionColumns+" FROM questions WHERE subject_id = ? AND id = ?",
		subjectID, id,
	)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// DistinctQuestionSubjectIDs lists every subject id that owns at least one question.
func (s *SQLiteStore) DistinctQuestionSubjectIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT subject_id FROM questions ORDER BY subject_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdateQuestionTags replaces a question's tags, the only user-editable field.
func (s *SQLiteStore) UpdateQuestionTags(ctx context.Context, subjectID string, id int, tags []string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE questions SET tags = ? WHERE subject_id = ? AND id = ?",
		encodeStrings(tags), subjectID, id,
	)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) queryQuestions(ctx context.Context, query string, args ...any) ([]question.Question, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]question.Question, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func scanQuestion(sc scanner) (question.Question, error) {
	var (
		q             question.Question
		qType         string
		explanation   string
		choices       sql.NullString
		answerText    string
		answerKind    sql.NullString
		tags          string
		createdAtUnix int64
	)
	err := sc.Scan(
		&q.ID, &q.SubjectID, &qType, &q.Text, &explanation, &choices,
		&answerText, &answerKind, &q.AnswerExplanation, &q.Weight, &tags, &createdAtUnix,
	)
	if err != nil {
		return question.Question{}, err
	}

	q.Type = question.Type(qType)
	q.Explanation = decodeStrings(explanation)
	q.Tags = decodeStrings(tags)
	q.Answer = question.DecodeAnswerKey(answerText, question.AnswerKind(answerKind.String))
	q.CreatedAt = time.Unix(0, createdAtUnix).UTC()

	if choices.Valid {
		var stored []storedChoice
		if err := json.Unmarshal([]byte(choices.String), &stored); err != nil {
			return question.Question{}, err
		}
		q.Choices = make([]question.Choice, len(stored))
		for i, c := range stored {
			q.Choices[i] = question.Choice{ID: c.ID, Text: c.Text}
		}
	}
	return q, nil
}
