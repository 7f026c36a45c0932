package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"fleetadmin/internal/services"
	"fleetadmin/internal/session"

	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	SessionKey   contextKey = "session"
	SubjectKey   contextKey = "subject"
	RoleKey      contextKey = "role"
)

// ErrorResponse mirrors the failure half of an outcome so clients can
// decode gateway rejections and backend rejections the same way.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// CORS allows credentials only for an explicit origin list; browsers refuse
// cookies on wildcard responses anyway.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	wildcard := len(origins) == 1 && origins[0] == "*"
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: !wildcard,
		MaxAge:           int((12 * time.Hour).Seconds()),
	}).Handler
}

var securityHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "no-referrer"},
	{"Strict-Transport-Security", "max-age=31536000; includeSubDomains"},
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
	// Responses carry tokens and customer data.
	{"Cache-Control", "no-store"},
}

func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, h := range securityHeaders {
				w.Header().Set(h[0], h[1])
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimiter is a single gateway-wide token bucket. The gateway serves one
// admin, so there is no per-client keying.
type RateLimiter struct {
	limiter *rate.Limiter
}

func NewRateLimiter(perSecond rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{limiter: rate.NewLimiter(perSecond, burst)}
}

func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				respondWithError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "Too many requests. Please try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogging tags each request with an id (reusing an upstream
// X-Request-ID), logs completion, and warns when a request takes longer
// than slow. A zero slow disables the warning.
func RequestLogging(logger zerolog.Logger, slow time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", requestID)
			r = r.WithContext(context.WithValue(r.Context(), RequestIDKey, requestID))

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			event := logger.Debug()
			switch {
			case rec.status >= http.StatusInternalServerError:
				event = logger.Error()
			case slow > 0 && elapsed > slow:
				event = logger.Warn().Bool("slow", true)
			}
			event.
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Dur("duration", elapsed).
				Msg("Request completed")
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// Session binds a cookie-backed token session to the request.
func Session(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.NewManager(session.NewCookieStore(w, r, secure))
			ctx := context.WithValue(r.Context(), SessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests without a token, or with a JWT whose exp
// has passed. Opaque tokens are passed through for the backend to judge.
func RequireSession(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := GetSession(r).Token()
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "no_token", services.NoTokenMessage)
				return
			}

			ctx := r.Context()
			if info, err := session.Inspect(token, time.Now()); err == nil {
				if info.Expired {
					logger.Warn().Str("subject", info.Subject).Msg("Expired token")
					respondWithError(w, http.StatusUnauthorized, "token_expired", "Session expired, please log in again")
					return
				}
				ctx = context.WithValue(ctx, SubjectKey, info.Subject)
				ctx = context.WithValue(ctx, RoleKey, info.Role)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects tokens whose role claim is outside allowedRoles.
// Tokens without a readable role are left to the backend.
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := GetRole(r)
			if role == "" {
				next.ServeHTTP(w, r)
				return
			}

			for _, allowed := range allowedRoles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			respondWithError(w, http.StatusForbidden, "forbidden", "Insufficient permissions")
		})
	}
}

// RequestValidation requires one of the given content types on POST and PUT
// requests that carry a body.
func RequestValidation(contentTypes ...string) func(http.Handler) http.Handler {
	accepted := func(ct string) bool {
		for _, want := range contentTypes {
			if strings.HasPrefix(ct, want) {
				return true
			}
		}
		return false
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hasBody := r.Method == http.MethodPost || r.Method == http.MethodPut
			if hasBody && r.ContentLength != 0 && !accepted(r.Header.Get("Content-Type")) {
				respondWithError(w, http.StatusBadRequest, "invalid_content_type", "Content-Type must be one of: "+strings.Join(contentTypes, ", "))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Recover turns a handler panic into a JSON 500.
func Recover(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					logger.Error().
						Interface("panic", p).
						Str("request_id", GetRequestID(r)).
						Str("path", r.URL.Path).
						Msg("Panic recovered")
					respondWithError(w, http.StatusInternalServerError, "internal_error", "An internal error occurred")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// GetSession returns the request's session, or a nil manager (which holds
// no token) when the Session middleware did not run.
func GetSession(r *http.Request) *session.Manager {
	sess, _ := r.Context().Value(SessionKey).(*session.Manager)
	return sess
}

func GetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(RequestIDKey).(string)
	return id
}

func GetSubject(r *http.Request) (string, bool) {
	subject, ok := r.Context().Value(SubjectKey).(string)
	return subject, ok
}

func GetRole(r *http.Request) (string, bool) {
	role, ok := r.Context().Value(RoleKey).(string)
	return role, ok
}

func respondWithError(w http.ResponseWriter, statusCode int, errorCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}
