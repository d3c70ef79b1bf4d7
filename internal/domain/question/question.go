package question

import (
	"errors"
	"strings"
	"time"
)

type Type string

const (
	TypeObjective  Type = "objective"
	TypeSubjective Type = "subjective"
)

// DefaultWeight is the sampling weight of a question nobody has re-weighted.
const DefaultWeight = 1.0

type Choice struct {
	ID   string
	Text string
}

// Question belongs to exactly one subject. IDs are only unique within
// that subject, so (ID, SubjectID) is the identity.
type Question struct {
	ID                int
	SubjectID         string
	Type              Type
	Text              string
	Explanation       []string
	Choices           []Choice // nil for free-form questions
	Answer            AnswerKey
	AnswerExplanation string
	Weight            float64
	Tags              []string
	CreatedAt         time.Time
}

// Key identifies a question across subjects.
type Key struct {
	ID        int
	SubjectID string
}

func (q Question) Key() Key {
	return Key{ID: q.ID, SubjectID: q.SubjectID}
}

func (q *Question) Validate() error {
	if q.Type != TypeObjective && q.Type != TypeSubjective {
		return errors.New("invalid question type: must be objective or subjective")
	}
	if strings.TrimSpace(q.Text) == "" {
		return errors.New("question text cannot be empty")
	}
	if q.Weight < 0 {
		return errors.New("question weight cannot be negative")
	}
	return nil
}

// Answer is one submission. Answers form an append-only log: they are never
// updated, and the latest answer for a question is the one with the greatest
// AnsweredAt.
type Answer struct {
	ID         int64
	QuestionID int
	SubjectID  string
	UserAnswer string
	IsCorrect  bool
	AnsweredAt time.Time
}

func NewAnswer(q Question, userAnswer string, correct bool, at time.Time) Answer {
	return Answer{
		QuestionID: q.ID,
		SubjectID:  q.SubjectID,
		UserAnswer: userAnswer,
		IsCorrect:  correct,
		AnsweredAt: at,
	}
}
