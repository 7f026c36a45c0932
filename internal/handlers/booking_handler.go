package handlers

import (
	"net/http"
	"time"

	"fleetadmin/internal/filter"
	"fleetadmin/internal/models"
	"fleetadmin/internal/services"
)

type BookingHandler struct {
	crud[models.Booking]
}

func NewBookingHandler(backend *Backend) *BookingHandler {
	return &BookingHandler{crud[models.Booking]{
		backend: backend,
		entity:  "booking",
		resource: func(c *services.Client) *services.Resource[models.Booking] {
			return services.NewBookingService(c).Resource
		},
	}}
}

// List accepts period, category and q query parameters.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	out := services.NewBookingService(h.backend.client(r)).List(r.Context())
	if !out.Success {
		respondWithOutcome(w, out)
		return
	}

	q := r.URL.Query()
	out.Data = filter.Bookings(out.Data, filter.BookingQuery{
		Period:   filter.Period(q.Get("period")),
		Category: filter.Category(q.Get("category")),
		Search:   q.Get("q"),
		Now:      time.Now(),
	})
	respondWithOutcome(w, out)
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_id", "Invalid booking ID")
		return
	}
	var req struct {
		Status models.BookingStatus `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	out := services.NewBookingService(h.backend.client(r)).UpdateStatus(r.Context(), id, req.Status)
	if out.Success {
		h.backend.record(r, h.entity, id, "status", req)
	}
	respondWithOutcome(w, out)
}
