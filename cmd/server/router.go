package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"taskdesk/internal/api"
	apiMiddleware "taskdesk/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.staffService)
	employeeHandler := api.NewEmployeeHandler(app.staffService)
	taskHandler := api.NewTaskHandler(app.taskService, app.fileService)
	notificationHandler := api.NewNotificationHandler(app.notificationService)
	fileHandler := api.NewFileHandler(app.fileService)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.employeeStore)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/employees", employeeHandler.List)
			r.Post("/employees", employeeHandler.Create)
			r.Delete("/employees/{id}", employeeHandler.Delete)

			r.Get("/tasks", taskHandler.List)
			r.Post("/tasks", taskHandler.Create)
			r.Get("/tasks/mine", taskHandler.Mine)
			r.Get("/tasks/completed", taskHandler.Completed)
			r.Get("/tasks/{id}", taskHandler.Get)
			r.Post("/tasks/{id}/accept", taskHandler.Accept)
			r.Post("/tasks/{id}/complete", taskHandler.Complete)
			r.Post("/tasks/{id}/approve", taskHandler.Approve)
			r.Post("/tasks/{id}/reject", taskHandler.Reject)

			r.Post("/tasks/{id}/file", fileHandler.Upload)
			r.Get("/tasks/{id}/file", fileHandler.Download)

			r.Get("/notifications", notificationHandler.List)
			r.Post("/notifications/read", notificationHandler.MarkRead)
		})
	})

	return r
}
