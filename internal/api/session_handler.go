package api

import (
	"net/http"

	stagesession "github.com/remaimber-it/quizcore/internal/domain/stage_session"
	"github.com/remaimber-it/quizcore/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateSessionRequest struct {
	SubjectID string `json:"subject_id" validate:"required" example:"go-basics"`
	Mode      string `json:"mode,omitempty" validate:"omitempty,oneof=normal wrong" example:"normal"`
	StageSize int    `json:"stage_size,omitempty" validate:"gte=0" example:"10"`
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer" example:"A lightweight thread"`
	// Correct overrides evaluation, for choice UIs that already know.
	Correct *bool `json:"correct,omitempty"`
}

type SessionResponse struct {
	State    stagesession.State `json:"state"`
	Question *QuestionResponse  `json:"question,omitempty"`
}

func toSessionResponse(snap service.Snapshot) SessionResponse {
	resp := SessionResponse{State: snap.State}
	if snap.Current != nil {
		// the answer is only revealed once the question is answered
		q := toQuestionResponse(*snap.Current, snap.State.IsAnswered || snap.State.IsComplete)
		resp.Question = &q
	}
	return resp
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createSession starts a stage session on a subject.
// @Summary      Start a session
// @Description  Normal mode resumes from saved progress; wrong mode reviews questions last answered incorrectly.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        body  body      CreateSessionRequest  true  "Session settings"
// @Success      201   {object}  SessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /sessions [post]
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	mode, err := stagesession.ParseMode(req.Mode)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := h.practice.Start(r.Context(), req.SubjectID, mode, req.StageSize)
	if h.handleError(w, err, "subject") {
		return
	}
	respondJSON(w, http.StatusCreated, toSessionResponse(snap))
}

// getSession returns the session state and current question.
// @Summary      Get a session
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  map[string]string
// @Router       /sessions/{sessionID} [get]
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.practice.Get(r.PathValue("sessionID"))
	if h.handleError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(snap))
}

// endSession forgets a session.
// @Summary      End a session
// @Tags         Sessions
// @Param        sessionID  path  string  true  "Session ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /sessions/{sessionID} [delete]
func (h *Handler) endSession(w http.ResponseWriter, r *http.Request) {
	if h.handleError(w, h.practice.End(r.PathValue("sessionID")), "session") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// submitAnswer answers the current question.
// @Summary      Submit an answer
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string               true  "Session ID"
// @Param        body       body      SubmitAnswerRequest  true  "Answer"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  map[string]string
// @Failure      409        {object}  map[string]string  "stage summary or completed session"
// @Router       /sessions/{sessionID}/answers [post]
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	snap, err := h.practice.Submit(r.Context(), r.PathValue("sessionID"), req.Answer, req.Correct)
	if h.handleError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(snap))
}

// applyAction runs a navigation transition.
// @Summary      Navigate a session
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        action     path      string  true  "advance, continue, retry, skip-next, skip-previous or previous"
// @Success      200        {object}  SessionResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Failure      409        {object}  map[string]string
// @Router       /sessions/{sessionID}/actions/{action} [post]
func (h *Handler) applyAction(w http.ResponseWriter, r *http.Request) {
	action, ok := service.ParseAction(r.PathValue("action"))
	if !ok {
		respondError(w, http.StatusBadRequest, "unknown action "+r.PathValue("action"))
		return
	}

	snap, err := h.practice.Apply(r.PathValue("sessionID"), action)
	if h.handleError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(snap))
}

// stageReport summarizes the answers of the current stage.
// @Summary      Stage report
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  service.StageReport
// @Failure      404        {object}  map[string]string
// @Router       /sessions/{sessionID}/stage-report [get]
func (h *Handler) stageReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.practice.StageReport(r.Context(), r.PathValue("sessionID"))
	if h.handleError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusOK, report)
}
