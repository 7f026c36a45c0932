package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"fleetadmin/internal/middleware"
	"fleetadmin/internal/models"
	"fleetadmin/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Backend is what every gateway handler shares. The services client is
// built per request because the token lives in that request's cookie.
type Backend struct {
	BaseURL string
	HTTP    *http.Client
	Logger  zerolog.Logger
	Audit   *services.AuditService
}

func (b *Backend) client(r *http.Request) *services.Client {
	logger := b.Logger.With().Str("request_id", middleware.GetRequestID(r)).Logger()
	return services.NewClient(b.BaseURL, b.HTTP, middleware.GetSession(r), logger)
}

// record writes an audit entry for a mutation that succeeded. Audit
// failures are logged, never surfaced to the caller.
func (b *Backend) record(r *http.Request, entity string, id int64, action string, details any) {
	actor, _ := middleware.GetSubject(r)
	if err := b.Audit.Record(r.Context(), entity, id, action, actor, details); err != nil {
		b.Logger.Warn().Err(err).Str("entity", entity).Str("action", action).Msg("Audit entry dropped")
	}
}

// statusFor maps a failed outcome to the gateway's HTTP status.
func statusFor(kind models.FailureKind) int {
	switch kind {
	case models.KindNoToken:
		return http.StatusUnauthorized
	case models.KindValidation:
		return http.StatusBadRequest
	case models.KindUnsupported:
		return http.StatusMethodNotAllowed
	case models.KindBackendRejected:
		return http.StatusUnprocessableEntity
	case models.KindTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondWithOutcome[T any](w http.ResponseWriter, o models.Outcome[T]) {
	code := http.StatusOK
	if !o.Success {
		code = statusFor(o.Kind)
	}
	respondWithJSON(w, code, o)
}

func respondWithError(w http.ResponseWriter, code int, errorCode, message string) {
	respondWithJSON(w, code, middleware.ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

var errInvalidID = errors.New("invalid id")

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return false
	}
	return true
}

// crud serves the id-addressed operations every resource shares.
type crud[T any] struct {
	backend  *Backend
	entity   string
	resource func(*services.Client) *services.Resource[T]
}

func (h crud[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_id", "Invalid "+h.entity+" ID")
		return
	}
	respondWithOutcome(w, h.resource(h.backend.client(r)).Get(r.Context(), id))
}

func (h crud[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_id", "Invalid "+h.entity+" ID")
		return
	}
	var patch models.Patch
	if !decodeBody(w, r, &patch) {
		return
	}
	if len(patch) == 0 {
		respondWithError(w, http.StatusBadRequest, "empty_update", "No fields to update")
		return
	}

	out := h.resource(h.backend.client(r)).Update(r.Context(), id, patch)
	if out.Success {
		h.backend.record(r, h.entity, id, "update", patch)
	}
	respondWithOutcome(w, out)
}

func (h crud[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_id", "Invalid "+h.entity+" ID")
		return
	}

	out := h.resource(h.backend.client(r)).Delete(r.Context(), id)
	if out.Success {
		h.backend.record(r, h.entity, id, "delete", nil)
	}
	respondWithOutcome(w, out)
}

func (h crud[T]) create(w http.ResponseWriter, r *http.Request, out models.Outcome[T], id func(T) int64, details any) {
	if out.Success {
		h.backend.record(r, h.entity, id(out.Data), "create", details)
	}
	respondWithOutcome(w, out)
}
