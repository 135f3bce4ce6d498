package api

import (
	"github.com/crewplan/crewplan/internal/config"
	"github.com/crewplan/crewplan/internal/db"
	"github.com/crewplan/crewplan/internal/repository/sqlite"
	"github.com/gorilla/mux"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, db *db.DB) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(db)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, cfg.JWTSecret, cfg.TokenDuration)
	scheduleHandler := NewScheduleHandler(repo, repo, repo)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Auth endpoints
	authV1 := apiV1.PathPrefix("/auth").Subrouter()
	authV1.HandleFunc("/signout", authHandler.Signout).Methods("POST")

	// Schedule endpoints
	schedules := apiV1.PathPrefix("/schedules").Subrouter()
	schedules.HandleFunc("/user-role/{user_id:[0-9]+}", scheduleHandler.UserRole).Methods("GET")
	schedules.HandleFunc("/submit", scheduleHandler.Submit).Methods("POST")
	schedules.HandleFunc("/user/{user_id:[0-9]+}", scheduleHandler.FetchForUser).Methods("GET")
	schedules.HandleFunc("/all-employees", scheduleHandler.AllEmployees).Methods("GET")
	schedules.HandleFunc("/edit/{schedule_id:[0-9]+}", scheduleHandler.EditSchedule).Methods("PUT")

	return r
}
