package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/remaimber-it/quizcore/internal/catalog"
	"github.com/remaimber-it/quizcore/internal/domain/progress"
	stagesession "github.com/remaimber-it/quizcore/internal/domain/stage_session"
	"github.com/remaimber-it/quizcore/internal/service"
	"github.com/remaimber-it/quizcore/internal/store"
	"github.com/remaimber-it/quizcore/internal/validation"
)

const maxBodyBytes = 10 << 20

// Services groups what the handlers call into.
type Services struct {
	Library     *service.Library
	Stats       *service.StatsService
	Progress    *service.ProgressTracker
	Practice    *service.Practice
	CatalogSync *service.CatalogSync
}

// Handler holds all dependencies needed by HTTP handlers.
type Handler struct {
	library     *service.Library
	stats       *service.StatsService
	progress    *service.ProgressTracker
	practice    *service.Practice
	catalogSync *service.CatalogSync
	logger      *slog.Logger
}

func NewHandler(svc Services, logger *slog.Logger) *Handler {
	return &Handler{
		library:     svc.Library,
		stats:       svc.Stats,
		progress:    svc.Progress,
		practice:    svc.Practice,
		catalogSync: svc.CatalogSync,
		logger:      logger,
	}
}

type errorResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads the body into v and answers 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

type validator interface {
	Validate() error
}

// decodeAndValidate decodes v, checks its struct tags, then its own
// Validate method if it has one.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if fields := validation.Validate(v); len(fields) > 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fields})
		return false
	}
	if val, ok := v.(validator); ok {
		if err := val.Validate(); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return false
		}
	}
	return true
}

// handleError maps domain errors to status codes and writes the response.
// Returns true if an error was handled (caller should return).
func (h *Handler) handleError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, catalog.ErrMalformedRecord),
		errors.Is(err, validation.ErrInvalid),
		errors.Is(err, progress.ErrInvalidTotal):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, stagesession.ErrInvalidTransition),
		errors.Is(err, stagesession.ErrSessionComplete),
		errors.Is(err, stagesession.ErrNoQuestions),
		errors.Is(err, stagesession.ErrNotStarted),
		errors.Is(err, service.ErrCatalogDisabled):
		respondError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("request failed", "error", err, "entity", entity)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
