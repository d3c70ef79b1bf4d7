package question

// AnswerStats aggregates the answer log of a single question.
// Questions that were never answered have no AnswerStats at all.
type AnswerStats struct {
	QuestionID      int
	TotalAttempts   int
	CorrectAttempts int
	LatestAnswer    string
	LatestCorrect   bool
}

// Accuracy is correct/total in [0,1].
func (s AnswerStats) Accuracy() float64 {
	if s.TotalAttempts == 0 {
		return 0
	}
	return float64(s.CorrectAttempts) / float64(s.TotalAttempts)
}

// Mastery scores each attempt 0 or 100 and weighs the latest one:
// mastery = latest*0.6 + historical_average*0.4
func (s AnswerStats) Mastery() int {
	if s.TotalAttempts == 0 {
		return 0
	}

	latest := 0
	if s.LatestCorrect {
		latest = 100
	}
	if s.TotalAttempts == 1 {
		return latest
	}

	// Historical average (excluding latest)
	historicalCorrect := s.CorrectAttempts
	if s.LatestCorrect {
		historicalCorrect--
	}
	historicalAvg := float64(historicalCorrect*100) / float64(s.TotalAttempts-1)

	mastery := int(float64(latest)*0.6 + historicalAvg*0.4)
	if mastery > 100 {
		mastery = 100
	}
	if mastery < 0 {
		mastery = 0
	}
	return mastery
}
