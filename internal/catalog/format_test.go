package catalog

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remaimber-it/quizcore/internal/domain/question"
	"github.com/remaimber-it/quizcore/internal/validation"
)

const sampleFile = `{
  "metadata": {"title": "Geography", "author": "kim", "tags": ["maps"]},
  "questions": [
    {
      "id": 1,
      "type": "objective",
      "question": {"questionText": "Capital of France?", "questionExplanation": ["Europe"]},
      "choices": [{"id": "a", "text": "Paris"}, {"id": "b", "text": "Lyon"}],
      "answer": {"answerText": "Paris", "answerExplanation": "It is Paris."}
    },
    {
      "id": 2,
      "type": "subjective",
      "question": {"questionText": "Name a primary colour"},
      "answer": {"answerText": ["red", "blue", "yellow"]},
      "tags": ["colours"]
    }
  ]
}`

func intPtr(v int) *int { return &v }

func TestParseQuestionFile(t *testing.T) {
	f, err := ParseQuestionFile([]byte(sampleFile))
	require.NoError(t, err)

	assert.Equal(t, "Geography", f.Metadata.Title)
	require.Len(t, f.Questions, 2)
	assert.Equal(t, 1, *f.Questions[0].ID)
	assert.Len(t, f.Questions[0].Choices, 2)
	assert.Equal(t, []string{"colours"}, f.Questions[1].Tags)
}

func TestParseQuestionFile_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{metadata`},
		{"missing questions", `{"metadata": {"title": "x"}}`},
		{"unknown type", `{"questions": [{"id": 1, "type": "essay"}]}`},
		{"choice without text", `{"questions": [{"id": 1, "type": "objective", "choices": [{"id": "a"}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuestionFile([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParseQuestionFile_ShapeErrorsAreValidationErrors(t *testing.T) {
	_, err := ParseQuestionFile([]byte(`{"questions": [{"id": 1, "type": "essay"}]}`))
	assert.True(t, errors.Is(err, validation.ErrInvalid))
}

func TestToQuestion(t *testing.T) {
	f, err := ParseQuestionFile([]byte(sampleFile))
	require.NoError(t, err)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	q, err := f.Questions[0].ToQuestion("geo", at)
	require.NoError(t, err)
	assert.Equal(t, 1, q.ID)
	assert.Equal(t, "geo", q.SubjectID)
	assert.Equal(t, question.TypeObjective, q.Type)
	assert.Equal(t, []question.Choice{{ID: "a", Text: "Paris"}, {ID: "b", Text: "Lyon"}}, q.Choices)
	assert.Equal(t, question.PlainText("Paris"), q.Answer)
	assert.Equal(t, question.DefaultWeight, q.Weight)
	assert.Equal(t, at, q.CreatedAt)

	q, err = f.Questions[1].ToQuestion("geo", at)
	require.NoError(t, err)
	assert.Nil(t, q.Choices)
	assert.Equal(t, question.MultiValue("red", "blue", "yellow"), q.Answer)
}

func TestToQuestion_ClassifiesStringContent(t *testing.T) {
	tests := []struct {
		name       string
		answerText string
		want       question.AnswerKey
	}{
		{"plain text", `"Paris"`, question.PlainText("Paris")},
		{"json number inside string", `"42"`, question.SingleValue("42")},
		{"json string inside string", `"\"42\""`, question.SingleValue("42")},
		{"json array inside string", `"[\"a\",\"b\"]"`, question.MultiValue("a", "b")},
		{"bare number", `7`, question.SingleValue("7")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fq := FileQuestion{
				ID:       intPtr(1),
				Type:     "subjective",
				Question: QuestionBody{QuestionText: "q"},
				Answer:   AnswerBody{AnswerText: json.RawMessage(tt.answerText)},
			}
			q, err := fq.ToQuestion("s", time.Time{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Answer)
		})
	}
}

func TestToQuestion_Malformed(t *testing.T) {
	valid := func() FileQuestion {
		return FileQuestion{
			ID:       intPtr(3),
			Type:     "objective",
			Question: QuestionBody{QuestionText: "q"},
			Answer:   AnswerBody{AnswerText: json.RawMessage(`"a"`)},
		}
	}

	tests := []struct {
		name   string
		mutate func(*FileQuestion)
	}{
		{"missing id", func(fq *FileQuestion) { fq.ID = nil }},
		{"missing type", func(fq *FileQuestion) { fq.Type = "" }},
		{"missing text", func(fq *FileQuestion) { fq.Question.QuestionText = "  " }},
		{"missing answer", func(fq *FileQuestion) { fq.Answer.AnswerText = nil }},
		{"null answer", func(fq *FileQuestion) { fq.Answer.AnswerText = json.RawMessage("null") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fq := valid()
			tt.mutate(&fq)
			_, err := fq.ToQuestion("s", time.Time{})
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestExport(t *testing.T) {
	f, err := ParseQuestionFile([]byte(sampleFile))
	require.NoError(t, err)
	sub, err := f.ToSubject("geo", "Geo", 2)
	require.NoError(t, err)

	qs := make([]question.Question, 0, 3)
	for _, fq := range f.Questions {
		q, err := fq.ToQuestion("geo", time.Time{})
		require.NoError(t, err)
		qs = append(qs, q)
	}
	qs = append(qs,
		question.Question{ID: 3, SubjectID: "geo", Type: question.TypeSubjective, Text: "Largest ocean?", Answer: question.SingleValue("Pacific")},
		question.Question{ID: 4, SubjectID: "geo", Type: question.TypeObjective, Text: "Pick two", Answer: question.MultiValue("a", "c")},
	)

	out := Export(sub, qs)
	assert.Equal(t, "Geography", out.Metadata.Title)
	assert.Equal(t, "kim", out.Metadata.Author)
	require.Len(t, out.Questions, 4)

	assert.JSONEq(t, `"Paris"`, string(out.Questions[0].Answer.AnswerText))
	assert.JSONEq(t, `["red","blue","yellow"]`, string(out.Questions[1].Answer.AnswerText))
	assert.JSONEq(t, `["Pacific"]`, string(out.Questions[2].Answer.AnswerText))
	assert.JSONEq(t, `["a","c"]`, string(out.Questions[3].Answer.AnswerText))
	assert.Equal(t, []FileChoice{{ID: "a", Text: "Paris"}, {ID: "b", Text: "Lyon"}}, out.Questions[0].Choices)
	assert.Equal(t, "It is Paris.", out.Questions[0].Answer.AnswerExplanation)
}

func TestExport_ReimportKeepsAnswers(t *testing.T) {
	f, err := ParseQuestionFile([]byte(sampleFile))
	require.NoError(t, err)
	sub, err := f.ToSubject("geo", "", 2)
	require.NoError(t, err)

	var qs []question.Question
	for _, fq := range f.Questions {
		q, err := fq.ToQuestion("geo", time.Time{})
		require.NoError(t, err)
		qs = append(qs, q)
	}

	data, err := json.Marshal(Export(sub, qs))
	require.NoError(t, err)
	again, err := ParseQuestionFile(data)
	require.NoError(t, err)

	for i, fq := range again.Questions {
		q, err := fq.ToQuestion("geo", time.Time{})
		require.NoError(t, err)
		assert.Equal(t, qs[i].Answer.Accepted(), q.Answer.Accepted())
		assert.True(t, q.Answer.Matches(qs[i].Answer.Accepted()[0]))
	}
}
