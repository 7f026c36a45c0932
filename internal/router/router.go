package router

import (
	"net/http"
	"time"

	"fleetadmin/internal/config"
	"fleetadmin/internal/handlers"
	"fleetadmin/internal/middleware"
	"fleetadmin/internal/models"
	"fleetadmin/internal/services"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const slowRequest = 2 * time.Second

func SetupRouter(cfg config.Config, backend *handlers.Backend, uploads *services.UploadService, logger zerolog.Logger) http.Handler {
	authHandler := handlers.NewAuthHandler(backend)
	bookingHandler := handlers.NewBookingHandler(backend)
	carHandler := handlers.NewCarHandler(backend)
	userHandler := handlers.NewUserHandler(backend)
	vendorHandler := handlers.NewVendorHandler(backend)
	parkingHandler := handlers.NewParkingHandler(backend)
	managerHandler := handlers.NewManagerHandler(backend)
	uploadHandler := handlers.NewUploadHandler(uploads, backend)
	auditHandler := handlers.NewAuditHandler(backend)
	dashboardHandler := handlers.NewDashboardHandler(backend)

	r := mux.NewRouter()

	rateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	r.Use(middleware.RequestLogging(logger, slowRequest))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(rateLimiter.Middleware())
	r.Use(middleware.Session(cfg.IsProduction()))
	r.Use(middleware.RequestValidation("application/json", "multipart/form-data"))

	auth := r.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")
	auth.HandleFunc("/token", authHandler.Token).Methods("GET")
	auth.HandleFunc("/check", authHandler.Check).Methods("GET")
	auth.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	// The parking list is public on the backend too.
	r.HandleFunc("/api/parking", parkingHandler.List).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.RequireSession(logger))
	api.Use(middleware.RequireRole(string(models.RoleAdmin)))

	api.HandleFunc("/dashboard", dashboardHandler.Overview).Methods("GET")

	api.HandleFunc("/bookings", bookingHandler.List).Methods("GET")
	api.HandleFunc("/bookings/{id:[0-9]+}", bookingHandler.Get).Methods("GET")
	api.HandleFunc("/bookings/{id:[0-9]+}", bookingHandler.Update).Methods("PUT")
	api.HandleFunc("/bookings/{id:[0-9]+}", bookingHandler.Delete).Methods("DELETE")
	api.HandleFunc("/bookings/{id:[0-9]+}/status", bookingHandler.UpdateStatus).Methods("PUT")

	api.HandleFunc("/cars", carHandler.List).Methods("GET")
	api.HandleFunc("/cars", carHandler.Create).Methods("POST")
	api.HandleFunc("/cars/{id:[0-9]+}", carHandler.Get).Methods("GET")
	api.HandleFunc("/cars/{id:[0-9]+}", carHandler.Update).Methods("PUT")
	api.HandleFunc("/cars/{id:[0-9]+}", carHandler.Delete).Methods("DELETE")

	api.HandleFunc("/users", userHandler.List).Methods("GET")
	api.HandleFunc("/users/{id:[0-9]+}", userHandler.Get).Methods("GET")
	api.HandleFunc("/users/{id:[0-9]+}", userHandler.Update).Methods("PUT")
	api.HandleFunc("/users/{id:[0-9]+}", userHandler.Delete).Methods("DELETE")

	api.HandleFunc("/vendors", vendorHandler.List).Methods("GET")
	api.HandleFunc("/vendors", vendorHandler.Create).Methods("POST")
	api.HandleFunc("/vendors/{id:[0-9]+}", vendorHandler.Get).Methods("GET")
	api.HandleFunc("/vendors/{id:[0-9]+}", vendorHandler.Update).Methods("PUT")
	api.HandleFunc("/vendors/{id:[0-9]+}", vendorHandler.Delete).Methods("DELETE")

	api.HandleFunc("/parking", parkingHandler.Create).Methods("POST")
	api.HandleFunc("/parking/{id:[0-9]+}", parkingHandler.Get).Methods("GET")
	api.HandleFunc("/parking/{id:[0-9]+}", parkingHandler.Update).Methods("PUT")
	api.HandleFunc("/parking/{id:[0-9]+}", parkingHandler.Delete).Methods("DELETE")
	api.HandleFunc("/parking/{id:[0-9]+}/managers", managerHandler.ListByParking).Methods("GET")
	api.HandleFunc("/parking/{id:[0-9]+}/managers", managerHandler.CreateForParking).Methods("POST")

	api.HandleFunc("/managers", managerHandler.Assign).Methods("POST")
	api.HandleFunc("/managers/search", managerHandler.Search).Methods("POST")
	api.HandleFunc("/managers/{id:[0-9]+}", managerHandler.Get).Methods("GET")
	api.HandleFunc("/managers/{id:[0-9]+}", managerHandler.Update).Methods("PUT")
	api.HandleFunc("/managers/{id:[0-9]+}/parking", managerHandler.Detach).Methods("DELETE")

	api.HandleFunc("/uploads", uploadHandler.Upload).Methods("POST")
	api.HandleFunc("/audit", auditHandler.Recent).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS wraps the router so preflight requests never need a route.
	return gorillahandlers.ProxyHeaders(middleware.CORS(cfg.CORSOrigins)(r))
}
