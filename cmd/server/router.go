package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/taskforge/taskforge-api/internal/api"
	apiMiddleware "github.com/taskforge/taskforge-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.authService, app.validate)
	taskHandler := api.NewTaskHandler(app.taskService, app.validate)
	userHandler := api.NewUserHandler(app.userService, app.validate)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)
		r.Post("/auth/validate", authHandler.Validate)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Task endpoints. The fixed paths must register before /{id}
			// so chi does not treat them as IDs.
			r.Get("/tasks", taskHandler.List)
			r.Post("/tasks", taskHandler.Create)
			r.Get("/tasks/filter", taskHandler.Filter)
			r.Get("/tasks/overdue", taskHandler.Overdue)
			r.Get("/tasks/statistics", taskHandler.Statistics)
			r.Get("/tasks/user/{username}", taskHandler.ListByUser)
			r.Get("/tasks/{id}", taskHandler.Get)
			r.Put("/tasks/{id}", taskHandler.Update)
			r.Delete("/tasks/{id}", taskHandler.Delete)
			r.Post("/tasks/{id}/complete", taskHandler.Complete)

			// User management endpoints
			r.Get("/users", userHandler.List)
			r.Post("/users", userHandler.Create)
			r.Get("/users/username/{username}", userHandler.GetByUsername)
			r.Get("/users/{id}", userHandler.Get)
			r.Put("/users/{id}", userHandler.Update)
			r.Delete("/users/{id}", userHandler.Delete)
			r.Post("/users/{id}/activate", userHandler.Activate)
			r.Post("/users/{id}/deactivate", userHandler.Deactivate)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
