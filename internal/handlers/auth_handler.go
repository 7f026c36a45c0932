package handlers

import (
	"net/http"
	"time"

	"fleetadmin/internal/middleware"
	"fleetadmin/internal/models"
	"fleetadmin/internal/services"
)

type AuthHandler struct {
	backend *Backend
}

func NewAuthHandler(backend *Backend) *AuthHandler {
	return &AuthHandler{backend: backend}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Number == "" || req.Password == "" {
		respondWithJSON(w, http.StatusBadRequest, models.LoginOutcome{Message: "Number and password are required"})
		return
	}

	out := services.NewAuthService(h.backend.client(r)).Login(r.Context(), req.Number, req.Password)
	if !out.Success {
		h.backend.Logger.Warn().Str("number", req.Number).Msg("Login failed")
		respondWithJSON(w, http.StatusUnauthorized, out)
		return
	}

	var id int64
	if out.User != nil {
		id = out.User.ID
	}
	h.backend.record(r, "session", id, "login", nil)
	respondWithJSON(w, http.StatusOK, out)
}

func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	token, _ := middleware.GetSession(r).Token()
	respondWithJSON(w, http.StatusOK, map[string]string{"accessToken": token})
}

func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	status := services.NewAuthService(h.backend.client(r)).Status(time.Now())
	respondWithJSON(w, http.StatusOK, status)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := services.NewAuthService(h.backend.client(r)).Logout(); err != nil {
		h.backend.Logger.Error().Err(err).Msg("Clearing session")
		respondWithError(w, http.StatusInternalServerError, "logout_failed", "Failed to log out")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Logged out"})
}
