package service_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remaimber-it/quizcore/internal/service"
	"github.com/remaimber-it/quizcore/internal/store"
)

func TestWeightedRandomQuestion_Distribution(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seed(t, s, "w", 1, 3)
	ss := service.NewStatsService(s, rand.New(rand.NewSource(42)), discardLogger())

	const draws = 10000
	second := 0
	for i := 0; i < draws; i++ {
		q, err := ss.WeightedRandomQuestion(ctx, "")
		require.NoError(t, err)
		require.NotNil(t, q)
		if q.ID == 2 {
			second++
		}
	}

	assert.InDelta(t, 0.75, float64(second)/draws, 0.02)
}

func TestWeightedRandomQuestion_EmptyPool(t *testing.T) {
	ss := service.NewStatsService(newStore(t), nil, discardLogger())

	q, err := ss.WeightedRandomQuestion(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestWeightedRandomQuestion_ScopedToSubject(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seed(t, s, "a", 1, 1)
	seed(t, s, "b", 1)
	ss := service.NewStatsService(s, rand.New(rand.NewSource(7)), discardLogger())

	for i := 0; i < 50; i++ {
		q, err := ss.WeightedRandomQuestion(ctx, "b")
		require.NoError(t, err)
		require.NotNil(t, q)
		assert.Equal(t, "b", q.SubjectID)
	}
}

func TestWeightedRandomQuestion_WholePoolSpansSubjects(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seed(t, s, "a", 1)
	seed(t, s, "b", 1)
	ss := service.NewStatsService(s, rand.New(rand.NewSource(1)), discardLogger())

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		q, err := ss.WeightedRandomQuestion(ctx, "")
		require.NoError(t, err)
		seen[q.SubjectID] = true
	}
	assert.True(t, seen["a"])
	assert.True(t, seen["b"])
}

func TestAnswerStats_OmitsUnanswered(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seed(t, s, "go", 1, 1, 1)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	record(t, s, "go", 1, false, base)
	record(t, s, "go", 1, true, base.Add(time.Minute))
	ss := service.NewStatsService(s, nil, discardLogger())

	stats, err := ss.AnswerStats(ctx, "go", []int{1, 2})
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].QuestionID)
	assert.Equal(t, 2, stats[0].TotalAttempts)
	assert.Equal(t, 1, stats[0].CorrectAttempts)
	assert.True(t, stats[0].LatestCorrect)
}

func TestWrongAnsweredQuestions(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seed(t, s, "go", 1, 1, 1)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	record(t, s, "go", 1, true, base)
	record(t, s, "go", 1, false, base.Add(time.Minute))
	record(t, s, "go", 2, false, base)
	record(t, s, "go", 2, true, base.Add(time.Minute))
	ss := service.NewStatsService(s, nil, discardLogger())

	wrong, err := ss.WrongAnsweredQuestions(ctx, "go")
	require.NoError(t, err)
	require.Len(t, wrong, 1)
	assert.Equal(t, 1, wrong[0].ID)
}

func TestSubjectReport(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seed(t, s, "go", 1, 1, 1, 1)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	// q1: one correct -> mastery 100
	record(t, s, "go", 1, true, base)
	// q2: wrong then correct -> 100*0.6 + 0*0.4 = 60
	record(t, s, "go", 2, false, base)
	record(t, s, "go", 2, true, base.Add(time.Minute))
	ss := service.NewStatsService(s, nil, discardLogger())

	report, err := ss.SubjectReport(ctx, "go")
	require.NoError(t, err)

	assert.Equal(t, "Subject go", report.Title)
	assert.Equal(t, 4, report.TotalQuestions)
	assert.Equal(t, 2, report.AnsweredQuestions)
	assert.Equal(t, 3, report.TotalAttempts)
	assert.Equal(t, 2, report.CorrectAttempts)
	assert.InDelta(t, 2.0/3.0, report.Accuracy, 1e-9)
	assert.Equal(t, (100+60)/4, report.Mastery)
	require.Len(t, report.Questions, 2)
	assert.Equal(t, 60, report.Questions[1].Mastery)
	assert.InDelta(t, 0.5, report.Questions[1].Accuracy, 1e-9)
}

func TestSubjectReport_UnknownSubject(t *testing.T) {
	ss := service.NewStatsService(newStore(t), nil, discardLogger())
	_, err := ss.SubjectReport(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
