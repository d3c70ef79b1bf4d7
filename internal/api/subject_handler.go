package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/remaimber-it/quizcore/internal/catalog"
	"github.com/remaimber-it/quizcore/internal/domain/question"
	"github.com/remaimber-it/quizcore/internal/domain/subject"
)

// ── Request / Response types ────────────────────────────────────────────────

type SubjectResponse struct {
	ID           string   `json:"id" example:"go-basics"`
	Title        string   `json:"title" example:"Go Basics"`
	Description  string   `json:"description,omitempty"`
	Category     []string `json:"category,omitempty"`
	Difficulty   string   `json:"difficulty,omitempty" example:"beginner"`
	Version      string   `json:"version,omitempty" example:"1.0"`
	CreatedAt    string   `json:"created_at,omitempty"`
	UpdatedAt    string   `json:"updated_at,omitempty"`
	Author       string   `json:"author,omitempty"`
	Source       string   `json:"source,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	License      string   `json:"license,omitempty"`
	NumQuestions int      `json:"num_questions" example:"25"`
}

func toSubjectResponse(s *subject.Subject) SubjectResponse {
	return SubjectResponse{
		ID:           s.ID,
		Title:        s.Title,
		Description:  s.Description,
		Category:     s.Category,
		Difficulty:   s.Difficulty,
		Version:      s.Version,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
		Author:       s.Author,
		Source:       s.Source,
		Tags:         s.Tags,
		License:      s.License,
		NumQuestions: s.NumQuestions,
	}
}

type ChoiceResponse struct {
	ID   string `json:"id" example:"a"`
	Text string `json:"text" example:"Paris"`
}

type QuestionResponse struct {
	ID                  int              `json:"id" example:"1"`
	SubjectID           string           `json:"subject_id" example:"go-basics"`
	Type                string           `json:"type" example:"objective"`
	QuestionText        string           `json:"question_text" example:"What is a goroutine?"`
	QuestionExplanation []string         `json:"question_explanation,omitempty"`
	Choices             []ChoiceResponse `json:"choices,omitempty"`
	AcceptedAnswers     []string         `json:"accepted_answers,omitempty"`
	AnswerExplanation   string           `json:"answer_explanation,omitempty"`
	Weight              float64          `json:"weight" example:"1"`
	Tags                []string         `json:"tags"`
}

// toQuestionResponse hides the answer unless withAnswer is set.
func toQuestionResponse(q question.Question, withAnswer bool) QuestionResponse {
	resp := QuestionResponse{
		ID:                  q.ID,
		SubjectID:           q.SubjectID,
		Type:                string(q.Type),
		QuestionText:        q.Text,
		QuestionExplanation: q.Explanation,
		Weight:              q.Weight,
		Tags:                q.Tags,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	for _, c := range q.Choices {
		resp.Choices = append(resp.Choices, ChoiceResponse{ID: c.ID, Text: c.Text})
	}
	if withAnswer {
		resp.AcceptedAnswers = q.Answer.Accepted()
		resp.AnswerExplanation = q.AnswerExplanation
	}
	return resp
}

type UpdateTagsRequest struct {
	Tags []string `json:"tags" validate:"dive,required"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listSubjects lists every stored subject.
// @Summary      List subjects
// @Tags         Subjects
// @Produce      json
// @Success      200  {array}   SubjectResponse
// @Failure      500  {object}  map[string]string
// @Router       /subjects [get]
func (h *Handler) listSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.library.ListSubjects(r.Context())
	if h.handleError(w, err, "subjects") {
		return
	}

	response := make([]SubjectResponse, len(subjects))
	for i, s := range subjects {
		response[i] = toSubjectResponse(s)
	}
	respondJSON(w, http.StatusOK, response)
}

// getSubject returns one subject's metadata.
// @Summary      Get a subject
// @Tags         Subjects
// @Produce      json
// @Param        subjectID  path      string  true  "Subject ID"
// @Success      200        {object}  SubjectResponse
// @Failure      404        {object}  map[string]string
// @Router       /subjects/{subjectID} [get]
func (h *Handler) getSubject(w http.ResponseWriter, r *http.Request) {
	sub, err := h.library.GetSubject(r.Context(), r.PathValue("subjectID"))
	if h.handleError(w, err, "subject") {
		return
	}
	respondJSON(w, http.StatusOK, toSubjectResponse(sub))
}

// importSubject replaces a subject's questions with an uploaded file.
// @Summary      Import a question file
// @Description  Full replace: every question must be valid or nothing is written.
// @Tags         Subjects
// @Accept       json
// @Produce      json
// @Param        subjectID  path      string                true  "Subject ID"
// @Param        body       body      catalog.QuestionFile  true  "Question file"
// @Success      201        {object}  SubjectResponse
// @Failure      400        {object}  map[string]string
// @Failure      500        {object}  map[string]string
// @Router       /subjects/{subjectID}/import [post]
func (h *Handler) importSubject(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read body")
		return
	}
	f, err := catalog.ParseQuestionFile(data)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sub, err := h.library.ImportSubject(r.Context(), r.PathValue("subjectID"), f)
	if h.handleError(w, err, "subject") {
		return
	}
	respondJSON(w, http.StatusCreated, toSubjectResponse(sub))
}

// deleteSubject removes a subject and all of its history.
// @Summary      Delete a subject
// @Description  Deletes the subject, its questions, answers and progress in one transaction.
// @Tags         Subjects
// @Param        subjectID  path  string  true  "Subject ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /subjects/{subjectID} [delete]
func (h *Handler) deleteSubject(w http.ResponseWriter, r *http.Request) {
	if h.handleError(w, h.library.DeleteSubject(r.Context(), r.PathValue("subjectID")), "subject") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// exportSubject returns the subject in the import file format.
// @Summary      Export a subject
// @Tags         Subjects
// @Produce      json
// @Param        subjectID  path      string  true  "Subject ID"
// @Success      200        {object}  catalog.QuestionFile
// @Failure      404        {object}  map[string]string
// @Router       /subjects/{subjectID}/export [get]
func (h *Handler) exportSubject(w http.ResponseWriter, r *http.Request) {
	subjectID := r.PathValue("subjectID")
	f, err := h.library.ExportSubject(r.Context(), subjectID)
	if h.handleError(w, err, "subject") {
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+subjectID+`.json"`)
	respondJSON(w, http.StatusOK, f)
}

// listQuestions lists a subject's questions with their answers.
// @Summary      List questions
// @Tags         Questions
// @Produce      json
// @Param        subjectID  path      string  true  "Subject ID"
// @Success      200        {array}   QuestionResponse
// @Failure      404        {object}  map[string]string
// @Router       /subjects/{subjectID}/questions [get]
func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.library.ListQuestions(r.Context(), r.PathValue("subjectID"))
	if h.handleError(w, err, "subject") {
		return
	}

	response := make([]QuestionResponse, len(questions))
	for i, q := range questions {
		response[i] = toQuestionResponse(q, true)
	}
	respondJSON(w, http.StatusOK, response)
}

// updateQuestionTags replaces a question's tags.
// @Summary      Update question tags
// @Tags         Questions
// @Accept       json
// @Param        subjectID   path  string             true  "Subject ID"
// @Param        questionID  path  int                true  "Question ID"
// @Param        body        body  UpdateTagsRequest  true  "New tags"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /subjects/{subjectID}/questions/{questionID}/tags [put]
func (h *Handler) updateQuestionTags(w http.ResponseWriter, r *http.Request) {
	questionID, err := strconv.Atoi(r.PathValue("questionID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "question id must be an integer")
		return
	}

	var req UpdateTagsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err = h.library.UpdateQuestionTags(r.Context(), r.PathValue("subjectID"), questionID, req.Tags)
	if h.handleError(w, err, "question") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
