package handlers

import (
	"net/http"

	"fleetadmin/internal/filter"
	"fleetadmin/internal/models"
	"fleetadmin/internal/services"
)

type UserHandler struct {
	crud[models.User]
}

func NewUserHandler(backend *Backend) *UserHandler {
	return &UserHandler{crud[models.User]{
		backend: backend,
		entity:  "user",
		resource: func(c *services.Client) *services.Resource[models.User] {
			return services.NewUserService(c).Resource
		},
	}}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	out := services.NewUserService(h.backend.client(r)).List(r.Context())
	if out.Success {
		out.Data = filter.Users(out.Data, r.URL.Query().Get("q"))
	}
	respondWithOutcome(w, out)
}

type VendorHandler struct {
	crud[models.User]
}

func NewVendorHandler(backend *Backend) *VendorHandler {
	return &VendorHandler{crud[models.User]{
		backend: backend,
		entity:  "vendor",
		resource: func(c *services.Client) *services.Resource[models.User] {
			return services.NewVendorService(c).Resource
		},
	}}
}

func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	out := services.NewVendorService(h.backend.client(r)).List(r.Context())
	if out.Success {
		out.Data = filter.Users(out.Data, r.URL.Query().Get("q"))
	}
	respondWithOutcome(w, out)
}

func (h *VendorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.AccountInput
	if !decodeBody(w, r, &input) {
		return
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Name, email and password are required")
		return
	}

	out := services.NewVendorService(h.backend.client(r)).Create(r.Context(), input)
	h.create(w, r, out, func(u models.User) int64 { return u.ID }, map[string]string{"email": input.Email})
}
