package api

import (
	"net/http"

	"github.com/remaimber-it/quizcore/internal/domain/progress"
)

type ProgressResponse struct {
	SubjectID string  `json:"subject_id" example:"go-basics"`
	LastIndex int     `json:"last_index" example:"4"`
	Percent   float64 `json:"percent" example:"0.5"`
	Total     int     `json:"total" example:"10"`
}

func toProgressResponse(subjectID string, s progress.Summary) ProgressResponse {
	return ProgressResponse{
		SubjectID: subjectID,
		LastIndex: s.LastIndex,
		Percent:   s.Percent,
		Total:     s.Total,
	}
}

// getSubjectStats returns the subject's answer statistics and mastery.
// @Summary      Subject statistics
// @Tags         Stats
// @Produce      json
// @Param        subjectID  path      string  true  "Subject ID"
// @Success      200        {object}  service.SubjectReport
// @Failure      404        {object}  map[string]string
// @Router       /subjects/{subjectID}/stats [get]
func (h *Handler) getSubjectStats(w http.ResponseWriter, r *http.Request) {
	report, err := h.stats.SubjectReport(r.Context(), r.PathValue("subjectID"))
	if h.handleError(w, err, "subject") {
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// listWrongQuestions lists questions whose latest answer was wrong.
// @Summary      Wrong-answered questions
// @Tags         Stats
// @Produce      json
// @Param        subjectID  path      string  true  "Subject ID"
// @Success      200        {array}   QuestionResponse
// @Failure      404        {object}  map[string]string
// @Router       /subjects/{subjectID}/wrong [get]
func (h *Handler) listWrongQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subjectID := r.PathValue("subjectID")

	if _, err := h.library.GetSubject(ctx, subjectID); h.handleError(w, err, "subject") {
		return
	}
	questions, err := h.stats.WrongAnsweredQuestions(ctx, subjectID)
	if h.handleError(w, err, "subject") {
		return
	}

	response := make([]QuestionResponse, len(questions))
	for i, q := range questions {
		response[i] = toQuestionResponse(q, true)
	}
	respondJSON(w, http.StatusOK, response)
}

// getProgress returns the resumption pointer of a subject.
// @Summary      Subject progress
// @Description  All fields are zero when the subject was never practiced.
// @Tags         Progress
// @Produce      json
// @Param        subjectID  path      string  true  "Subject ID"
// @Success      200        {object}  ProgressResponse
// @Router       /subjects/{subjectID}/progress [get]
func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	subjectID := r.PathValue("subjectID")
	sum, err := h.progress.Summary(r.Context(), subjectID)
	if h.handleError(w, err, "progress") {
		return
	}
	respondJSON(w, http.StatusOK, toProgressResponse(subjectID, sum))
}

// resetProgress zeroes a subject's progress.
// @Summary      Reset progress
// @Tags         Progress
// @Param        subjectID  path  string  true  "Subject ID"
// @Success      204
// @Router       /subjects/{subjectID}/progress [delete]
func (h *Handler) resetProgress(w http.ResponseWriter, r *http.Request) {
	if h.handleError(w, h.progress.ResetProgress(r.Context(), r.PathValue("subjectID")), "progress") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// randomQuestion draws one question weighted by question weight.
// @Summary      Weighted random question
// @Tags         Practice
// @Produce      json
// @Param        subject_id  query     string  false  "Restrict the draw to one subject"
// @Success      200         {object}  QuestionResponse
// @Success      204         "no questions"
// @Router       /practice/random [get]
func (h *Handler) randomQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.stats.WeightedRandomQuestion(r.Context(), r.URL.Query().Get("subject_id"))
	if h.handleError(w, err, "question") {
		return
	}
	if q == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, toQuestionResponse(*q, true))
}
