package service_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/remaimber-it/quizcore/internal/domain/question"
	"github.com/remaimber-it/quizcore/internal/domain/subject"
	"github.com/remaimber-it/quizcore/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// seed stores a subject whose question i (1-based) has answer "a<i>".
func seed(t *testing.T, s *store.SQLiteStore, subjectID string, weights ...float64) {
	t.Helper()
	sub, err := subject.New(subjectID, "Subject "+subjectID, subject.Metadata{}, len(weights))
	require.NoError(t, err)

	qs := make([]question.Question, len(weights))
	for i, w := range weights {
		qs[i] = question.Question{
			ID:        i + 1,
			SubjectID: subjectID,
			Type:      question.TypeSubjective,
			Text:      fmt.Sprintf("Q%d", i+1),
			Answer:    question.SingleValue(fmt.Sprintf("a%d", i+1)),
			Weight:    w,
		}
	}
	require.NoError(t, s.ReplaceQuestions(context.Background(), sub, qs))
}

func record(t *testing.T, s *store.SQLiteStore, subjectID string, questionID int, correct bool, at time.Time) {
	t.Helper()
	_, err := s.SaveAnswer(context.Background(), question.Answer{
		QuestionID: questionID,
		SubjectID:  subjectID,
		UserAnswer: "x",
		IsCorrect:  correct,
		AnsweredAt: at,
	})
	require.NoError(t, err)
}
