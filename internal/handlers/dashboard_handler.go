package handlers

import (
	"net/http"
	"time"

	"fleetadmin/internal/filter"
	"fleetadmin/internal/services"
)

type DashboardHandler struct {
	backend *Backend
}

func NewDashboardHandler(backend *Backend) *DashboardHandler {
	return &DashboardHandler{backend: backend}
}

// Overview accepts period=today|week|month; anything else covers all bookings.
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	period := filter.Period(r.URL.Query().Get("period"))
	respondWithOutcome(w, services.NewDashboardService(h.backend.client(r)).Overview(r.Context(), period, time.Now()))
}
