package stagesession

// State is a read-only snapshot of a session. CurrentIndex is nil before
// Start and for an empty question list; the stage fields are zero then.
type State struct {
	SessionID       string `json:"session_id"`
	SubjectID       string `json:"subject_id"`
	Mode            Mode   `json:"mode"`
	StageSize       int    `json:"stage_size"`
	TotalQuestions  int    `json:"total_questions"`
	CurrentIndex    *int   `json:"current_index"`
	IsAnswered      bool   `json:"is_answered"`
	IsCorrect       bool   `json:"is_correct"`
	IsStageSummary  bool   `json:"is_stage_summary"`
	IsComplete      bool   `json:"is_complete"`
	CurrentStage    int    `json:"current_stage"`
	TotalStages     int    `json:"total_stages"`
	StageStart      int    `json:"stage_start"`
	StageEnd        int    `json:"stage_end"`
	PositionInStage int    `json:"position_in_stage"`
}

func (s *Session) State() State {
	st := State{
		SessionID:      s.ID,
		SubjectID:      s.SubjectID,
		Mode:           s.config.Mode,
		StageSize:      s.config.StageSize,
		TotalQuestions: s.total(),
		TotalStages:    TotalStages(s.total(), s.config.StageSize),
		IsAnswered:     s.isAnswered,
		IsCorrect:      s.isCorrect,
		IsStageSummary: s.isStageSummary,
		IsComplete:     s.isComplete,
	}
	if !s.started || s.total() == 0 {
		return st
	}

	idx := s.index
	size := s.config.StageSize
	st.CurrentIndex = &idx
	st.CurrentStage = CurrentStage(idx, size)
	st.StageStart = StageStart(idx, size)
	st.StageEnd = StageEnd(idx, size, s.total())
	st.PositionInStage = PositionInStage(idx, size)
	return st
}

// IsEmpty reports the terminal "no questions" state.
func (s *Session) IsEmpty() bool {
	return s.total() == 0
}
