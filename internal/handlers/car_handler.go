package handlers

import (
	"net/http"

	"fleetadmin/internal/filter"
	"fleetadmin/internal/models"
	"fleetadmin/internal/services"
)

type CarHandler struct {
	crud[models.Car]
}

func NewCarHandler(backend *Backend) *CarHandler {
	return &CarHandler{crud[models.Car]{
		backend: backend,
		entity:  "car",
		resource: func(c *services.Client) *services.Resource[models.Car] {
			return services.NewCarService(c).Resource
		},
	}}
}

// List accepts availability and q query parameters. from and to, given
// together, keep only the cars booked in that range.
func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cars := services.NewCarService(h.backend.client(r))

	var out models.Outcome[[]models.Car]
	if q.Get("from") != "" || q.Get("to") != "" {
		start, err := filter.ParseDate(q.Get("from"))
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid_date", err.Error())
			return
		}
		end, err := filter.ParseDate(q.Get("to"))
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid_date", err.Error())
			return
		}
		out = cars.ListBookedBetween(r.Context(), start, end)
	} else {
		out = cars.List(r.Context())
	}
	if !out.Success {
		respondWithOutcome(w, out)
		return
	}

	out.Data = filter.Cars(out.Data, filter.Availability(q.Get("availability")), q.Get("q"))
	respondWithOutcome(w, out)
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.CarInput
	if !decodeBody(w, r, &input) {
		return
	}
	if input.Name == "" || input.CarNumber == "" {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Car name and number are required")
		return
	}

	out := services.NewCarService(h.backend.client(r)).Create(r.Context(), input)
	h.create(w, r, out, func(c models.Car) int64 { return c.ID }, map[string]string{"carnumber": input.CarNumber})
}
