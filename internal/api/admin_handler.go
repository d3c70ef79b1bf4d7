package api

import "net/http"

type ResetRequest struct {
	Target string `json:"target" validate:"required,oneof=questions subjects answers all" example:"questions"`
	// Drop removes the table(s) without recreating them.
	Drop bool `json:"drop"`
}

// syncCatalog reloads the manifest and reconciles the store with it.
// @Summary      Synchronize the catalog
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  catalog.Report
// @Failure      409  {object}  map[string]string  "no manifest configured"
// @Failure      500  {object}  map[string]string
// @Router       /catalog/sync [post]
func (h *Handler) syncCatalog(w http.ResponseWriter, r *http.Request) {
	report, err := h.catalogSync.Run(r.Context())
	if h.handleError(w, err, "catalog") {
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// resetTables drops or recreates storage tables.
// @Summary      Reset storage tables
// @Description  Resets (drop and recreate empty) or removes (drop only) one table or all of them.
// @Tags         Admin
// @Accept       json
// @Param        body  body  ResetRequest  true  "What to reset"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Router       /admin/reset [post]
func (h *Handler) resetTables(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if h.handleError(w, h.library.Reset(r.Context(), req.Target, req.Drop), "table") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
