package progress

import "errors"

var ErrInvalidTotal = errors.New("progress: total must be positive and index non-negative")

// Progress is the single resumption pointer of a subject. There is one
// row per subject; it is overwritten, never appended.
type Progress struct {
	SubjectID         string
	LastQuestionIndex int
	ProgressPercent   float64
}

// Summary is Progress joined with the subject's question count.
type Summary struct {
	LastIndex int
	Percent   float64
	Total     int
}

// Percent returns (index+1)/total clamped to [0,1].
func Percent(index, total int) (float64, error) {
	if total <= 0 || index < 0 {
		return 0, ErrInvalidTotal
	}
	p := float64(index+1) / float64(total)
	if p > 1 {
		p = 1
	}
	return p, nil
}

// New computes the row stored after answering the question at index.
func New(subjectID string, index, total int) (Progress, error) {
	p, err := Percent(index, total)
	if err != nil {
		return Progress{}, err
	}
	return Progress{
		SubjectID:         subjectID,
		LastQuestionIndex: index,
		ProgressPercent:   p,
	}, nil
}
