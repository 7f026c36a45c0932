package handlers

import (
	"net/http"
	"strconv"
)

type AuditHandler struct {
	backend *Backend
}

func NewAuditHandler(backend *Backend) *AuditHandler {
	return &AuditHandler{backend: backend}
}

// Recent lists audit entries, optionally filtered by entity and capped by limit.
func (h *AuditHandler) Recent(w http.ResponseWriter, r *http.Request) {
	if h.backend.Audit == nil {
		respondWithError(w, http.StatusNotFound, "audit_disabled", "Audit log is not configured")
		return
	}

	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > 500 {
			respondWithError(w, http.StatusBadRequest, "invalid_limit", "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	entries, err := h.backend.Audit.Recent(r.Context(), r.URL.Query().Get("entity"), limit)
	if err != nil {
		h.backend.Logger.Error().Err(err).Msg("Listing audit entries")
		respondWithError(w, http.StatusInternalServerError, "audit_failed", "Failed to read audit log")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"success": true, "data": entries})
}
