package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/remaimber-it/quizcore/internal/domain/question"
	"github.com/remaimber-it/quizcore/internal/domain/subject"
	"github.com/remaimber-it/quizcore/internal/validation"
)

// ErrMalformedRecord marks a question that lacks a required field.
var ErrMalformedRecord = errors.New("malformed question record")

// ── File format ─────────────────────────────────────────────────────────────

// QuestionFile is the on-disk question set: the import format, and what
// Export produces.
type QuestionFile struct {
	Metadata  Metadata       `json:"metadata"`
	Questions []FileQuestion `json:"questions" validate:"required,dive"`
}

type Metadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    []string `json:"category,omitempty"`
	Difficulty  string   `json:"difficulty,omitempty"`
	Version     string   `json:"version,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
	Author      string   `json:"author,omitempty"`
	Source      string   `json:"source,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	License     string   `json:"license,omitempty"`
}

type FileQuestion struct {
	ID       *int         `json:"id"`
	Type     string       `json:"type" validate:"omitempty,oneof=objective subjective"`
	Question QuestionBody `json:"question"`
	Choices  []FileChoice `json:"choices,omitempty" validate:"omitempty,dive"`
	Answer   AnswerBody   `json:"answer"`
	Tags     []string     `json:"tags,omitempty"`
}

type QuestionBody struct {
	QuestionText        string   `json:"questionText"`
	QuestionExplanation []string `json:"questionExplanation"`
}

type FileChoice struct {
	ID   string `json:"id"`
	Text string `json:"text" validate:"required"`
}

// AnswerBody.AnswerText is either a JSON string or an array of strings.
type AnswerBody struct {
	AnswerText        json.RawMessage `json:"answerText"`
	AnswerExplanation string          `json:"answerExplanation"`
}

// ParseQuestionFile decodes and shape-checks a question file. Per-question
// required fields are checked later by ToQuestion, so a file with a few bad
// records still parses.
func ParseQuestionFile(data []byte) (QuestionFile, error) {
	var f QuestionFile
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&f); err != nil {
		return QuestionFile{}, fmt.Errorf("decode question file: %w", err)
	}
	if err := validation.Struct(f); err != nil {
		return QuestionFile{}, err
	}
	return f, nil
}

// ── File → domain ───────────────────────────────────────────────────────────

func (m Metadata) toDomain() subject.Metadata {
	return subject.Metadata{
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		Difficulty:  m.Difficulty,
		Version:     m.Version,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		Author:      m.Author,
		Source:      m.Source,
		Tags:        m.Tags,
		License:     m.License,
	}
}

// ToSubject builds the Subject row for a file stored under subjectID.
func (f QuestionFile) ToSubject(subjectID, displayName string, numQuestions int) (*subject.Subject, error) {
	return subject.New(subjectID, displayName, f.Metadata.toDomain(), numQuestions)
}

// ToQuestion converts one file record. Missing id, type, text or answer is
// ErrMalformedRecord.
func (fq FileQuestion) ToQuestion(subjectID string, createdAt time.Time) (question.Question, error) {
	if fq.ID == nil {
		return question.Question{}, fmt.Errorf("%w: missing id", ErrMalformedRecord)
	}
	if fq.Type == "" {
		return question.Question{}, fmt.Errorf("%w: question %d: missing type", ErrMalformedRecord, *fq.ID)
	}
	key, ok := decodeAnswerText(fq.Answer.AnswerText)
	if !ok {
		return question.Question{}, fmt.Errorf("%w: question %d: missing answer", ErrMalformedRecord, *fq.ID)
	}

	q := question.Question{
		ID:                *fq.ID,
		SubjectID:         subjectID,
		Type:              question.Type(fq.Type),
		Text:              fq.Question.QuestionText,
		Explanation:       fq.Question.QuestionExplanation,
		Answer:            key,
		AnswerExplanation: fq.Answer.AnswerExplanation,
		Weight:            question.DefaultWeight,
		Tags:              fq.Tags,
		CreatedAt:         createdAt,
	}
	if fq.Choices != nil {
		q.Choices = make([]question.Choice, len(fq.Choices))
		for i, c := range fq.Choices {
			q.Choices[i] = question.Choice{ID: c.ID, Text: c.Text}
		}
	}

	if err := q.Validate(); err != nil {
		return question.Question{}, fmt.Errorf("%w: question %d: %v", ErrMalformedRecord, *fq.ID, err)
	}
	return q, nil
}

// decodeAnswerText classifies answerText once. A JSON string is classified
// by its content, the way answers stored as text always were; an array is
// a set of acceptable answers.
func decodeAnswerText(raw json.RawMessage) (question.AnswerKey, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return question.AnswerKey{}, false
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return question.AnswerKey{}, false
		}
		return question.ParseAnswerKey(s), true
	}
	return question.ParseAnswerKey(trimmed), true
}

// ── Domain → file ───────────────────────────────────────────────────────────

// Export rebuilds the file of a stored subject. Subjective answers are
// always written as arrays; objective answers as a plain string unless
// more than one value is accepted.
func Export(sub *subject.Subject, questions []question.Question) QuestionFile {
	meta := sub.Metadata()
	f := QuestionFile{
		Metadata: Metadata{
			Title:       meta.Title,
			Description: meta.Description,
			Category:    meta.Category,
			Difficulty:  meta.Difficulty,
			Version:     meta.Version,
			CreatedAt:   meta.CreatedAt,
			UpdatedAt:   meta.UpdatedAt,
			Author:      meta.Author,
			Source:      meta.Source,
			Tags:        meta.Tags,
			License:     meta.License,
		},
		Questions: make([]FileQuestion, len(questions)),
	}

	for i, q := range questions {
		id := q.ID
		fq := FileQuestion{
			ID:   &id,
			Type: string(q.Type),
			Question: QuestionBody{
				QuestionText:        q.Text,
				QuestionExplanation: q.Explanation,
			},
			Answer: AnswerBody{
				AnswerText:        encodeAnswerText(q),
				AnswerExplanation: q.AnswerExplanation,
			},
			Tags: q.Tags,
		}
		if q.Choices != nil {
			fq.Choices = make([]FileChoice, len(q.Choices))
			for j, c := range q.Choices {
				fq.Choices[j] = FileChoice{ID: c.ID, Text: c.Text}
			}
		}
		f.Questions[i] = fq
	}
	return f
}

func encodeAnswerText(q question.Question) json.RawMessage {
	accepted := q.Answer.Accepted()
	var b []byte
	if q.Type == question.TypeObjective && len(accepted) == 1 {
		b, _ = json.Marshal(accepted[0])
	} else {
		b, _ = json.Marshal(accepted)
	}
	return b
}
