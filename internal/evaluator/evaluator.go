package evaluator

import "github.com/remaimber-it/quizcore/internal/domain/question"

// Evaluator judges a user's answer against a question.
// Implementations may compare answer keys, trust a choice UI, or return
// canned results (for tests).
type Evaluator interface {
	Evaluate(q question.Question, userAnswer string) bool
}

// CheckAnswer compares userAnswer with a correct answer in any of its
// stored encodings (plain text, JSON string/number, JSON array). A stored
// answer that is not JSON is treated as literal text; that is not an error.
func CheckAnswer(storedAnswer, userAnswer string) bool {
	return question.ParseAnswerKey(storedAnswer).Matches(userAnswer)
}

// KeyEvaluator matches against the question's classified answer key.
type KeyEvaluator struct{}

func (KeyEvaluator) Evaluate(q question.Question, userAnswer string) bool {
	return q.Answer.Matches(userAnswer)
}

// Func adapts a plain function to Evaluator.
type Func func(q question.Question, userAnswer string) bool

func (f Func) Evaluate(q question.Question, userAnswer string) bool {
	return f(q, userAnswer)
}
