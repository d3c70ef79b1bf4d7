package api

import "net/http"

// RegisterRoutes mounts the API on mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Catalog & admin
	mux.HandleFunc("POST /catalog/sync", h.syncCatalog)
	mux.HandleFunc("POST /admin/reset", h.resetTables)

	// Subjects
	mux.HandleFunc("GET /subjects", h.listSubjects)
	mux.HandleFunc("GET /subjects/{subjectID}", h.getSubject)
	mux.HandleFunc("DELETE /subjects/{subjectID}", h.deleteSubject)
	mux.HandleFunc("POST /subjects/{subjectID}/import", h.importSubject)
	mux.HandleFunc("GET /subjects/{subjectID}/export", h.exportSubject)

	// Questions
	mux.HandleFunc("GET /subjects/{subjectID}/questions", h.listQuestions)
	mux.HandleFunc("PUT /subjects/{subjectID}/questions/{questionID}/tags", h.updateQuestionTags)

	// Stats & progress
	mux.HandleFunc("GET /subjects/{subjectID}/stats", h.getSubjectStats)
	mux.HandleFunc("GET /subjects/{subjectID}/wrong", h.listWrongQuestions)
	mux.HandleFunc("GET /subjects/{subjectID}/progress", h.getProgress)
	mux.HandleFunc("DELETE /subjects/{subjectID}/progress", h.resetProgress)
	mux.HandleFunc("GET /practice/random", h.randomQuestion)

	// Sessions
	mux.HandleFunc("POST /sessions", h.createSession)
	mux.HandleFunc("GET /sessions/{sessionID}", h.getSession)
	mux.HandleFunc("DELETE /sessions/{sessionID}", h.endSession)
	mux.HandleFunc("POST /sessions/{sessionID}/answers", h.submitAnswer)
	mux.HandleFunc("POST /sessions/{sessionID}/actions/{action}", h.applyAction)
	mux.HandleFunc("GET /sessions/{sessionID}/stage-report", h.stageReport)
}
