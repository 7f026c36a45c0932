package handlers

import (
	"net/http"

	"fleetadmin/internal/models"
	"fleetadmin/internal/services"
)

type ParkingHandler struct {
	crud[models.ParkingSpot]
}

func NewParkingHandler(backend *Backend) *ParkingHandler {
	return &ParkingHandler{crud[models.ParkingSpot]{
		backend: backend,
		entity:  "parking",
		resource: func(c *services.Client) *services.Resource[models.ParkingSpot] {
			return services.NewParkingService(c).Resource
		},
	}}
}

func (h *ParkingHandler) List(w http.ResponseWriter, r *http.Request) {
	respondWithOutcome(w, services.NewParkingService(h.backend.client(r)).List(r.Context()))
}

func (h *ParkingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.ParkingSpotInput
	if !decodeBody(w, r, &input) {
		return
	}
	if input.Name == "" || input.Locality == "" {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Parking name and locality are required")
		return
	}

	out := services.NewParkingService(h.backend.client(r)).Create(r.Context(), input)
	h.create(w, r, out, func(p models.ParkingSpot) int64 { return p.ID }, map[string]string{"name": input.Name})
}

type ManagerHandler struct {
	crud[models.User]
}

func NewManagerHandler(backend *Backend) *ManagerHandler {
	return &ManagerHandler{crud[models.User]{
		backend: backend,
		entity:  "parking_manager",
		resource: func(c *services.Client) *services.Resource[models.User] {
			return services.NewParkingManagerService(c).Resource
		},
	}}
}

func (h *ManagerHandler) ListByParking(w http.ResponseWriter, r *http.Request) {
	parkingID, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_id", "Invalid parking ID")
		return
	}
	respondWithOutcome(w, services.NewParkingManagerService(h.backend.client(r)).ListByParking(r.Context(), parkingID))
}

// CreateForParking registers a new manager bound to the parking spot in the path.
func (h *ManagerHandler) CreateForParking(w http.ResponseWriter, r *http.Request) {
	parkingID, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_id", "Invalid parking ID")
		return
	}
	var input models.AccountInput
	if !decodeBody(w, r, &input) {
		return
	}
	if input.Name == "" || input.Number == 0 || input.Password == "" {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Name, number and password are required")
		return
	}

	out := services.NewParkingManagerService(h.backend.client(r)).Create(r.Context(), parkingID, input)
	h.create(w, r, out, func(u models.User) int64 { return u.ID }, map[string]int64{"parkingid": parkingID})
}

func (h *ManagerHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Number string `json:"number"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Number == "" {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Phone number is required")
		return
	}
	respondWithOutcome(w, services.NewParkingManagerService(h.backend.client(r)).SearchByPhone(r.Context(), req.Number))
}

func (h *ManagerHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req models.ManagerAssignment
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ParkingID <= 0 || req.ID <= 0 {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "parkingid and id are required")
		return
	}

	out := services.NewParkingManagerService(h.backend.client(r)).Assign(r.Context(), req.ParkingID, req.ID)
	if out.Success {
		h.backend.record(r, h.entity, req.ID, "assign", req)
	}
	respondWithOutcome(w, out)
}

func (h *ManagerHandler) Detach(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_id", "Invalid parking manager ID")
		return
	}

	out := services.NewParkingManagerService(h.backend.client(r)).Detach(r.Context(), id)
	if out.Success {
		h.backend.record(r, h.entity, id, "detach", nil)
	}
	respondWithOutcome(w, out)
}
