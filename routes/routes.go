package routes

import (
	"github.com/gorilla/mux"

	"isip/handlers"
	"isip/middleware"
)

// HTTP method constants for better maintainability
var (
	MethodsGetOnly    = []string{"GET", "OPTIONS"}
	MethodsPostOnly   = []string{"POST", "OPTIONS"}
	MethodsPutOnly    = []string{"PUT", "OPTIONS"}
	MethodsPutPatch   = []string{"PUT", "PATCH", "OPTIONS"}
	MethodsPatchOnly  = []string{"PATCH", "OPTIONS"}
	MethodsDeleteOnly = []string{"DELETE", "OPTIONS"}
)

func RegisterRoutes(r *mux.Router) {
	// ====================
	// PUBLIC ROUTES (No auth required)
	// ====================
	r.HandleFunc("/health", handlers.HealthCheck).Methods(MethodsGetOnly...)

	r.HandleFunc("/api/auth/login", handlers.Login).Methods(MethodsPostOnly...)
	r.HandleFunc("/api/auth/refresh", handlers.RefreshToken).Methods(MethodsPostOnly...)

	// Anyone may submit an idea; everything else on /api/ideas is gated.
	r.HandleFunc("/api/ideas", handlers.CreateIdea).Methods(MethodsPostOnly...)

	// Anonymous status lookup by reference token. The token is the URL
	// people share, so both slash forms are accepted.
	r.HandleFunc("/api/track/{refID}", handlers.TrackIdea).Methods(MethodsGetOnly...)
	r.HandleFunc("/api/track/{refID}/", handlers.TrackIdea).Methods(MethodsGetOnly...)

	// ====================
	// ADMIN ROUTES (Require authentication)
	// ====================
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(middleware.AuthMiddleware)

	// Ideas
	apiRouter.HandleFunc("/ideas", handlers.ListIdeas).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/ideas/{id}/read", handlers.MarkIdeaRead).Methods(MethodsPatchOnly...)
	apiRouter.HandleFunc("/ideas/{id}", handlers.GetIdea).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/ideas/{id}", handlers.UpdateIdea).Methods(MethodsPutPatch...)
	apiRouter.HandleFunc("/ideas/{id}", handlers.DeleteIdea).Methods(MethodsDeleteOnly...)

	// Dashboard stats
	apiRouter.HandleFunc("/stats", handlers.GetStats).Methods(MethodsGetOnly...)

	// User management
	apiRouter.HandleFunc("/users", handlers.ListUsers).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/users", handlers.CreateUser).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/users/me", handlers.GetCurrentUser).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/users/{id}", handlers.GetUser).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/users/{id}", handlers.UpdateUser).Methods(MethodsPutOnly...)
	apiRouter.HandleFunc("/users/{id}", handlers.DeleteUser).Methods(MethodsDeleteOnly...)
}
