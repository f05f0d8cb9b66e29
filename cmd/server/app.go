package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"taskdesk/internal/config"
	"taskdesk/internal/platform/postgres"
	"taskdesk/internal/service/auth"
	"taskdesk/internal/service/notification"
	"taskdesk/internal/service/staff"
	"taskdesk/internal/service/taskfile"
	"taskdesk/internal/service/tasklife"
	"taskdesk/internal/store"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	employeeStore     store.EmployeeStore
	taskStore         store.TaskStore
	notificationStore store.NotificationStore
	taskFileStore     store.TaskFileStore

	jwtService          auth.JWTService
	staffService        staff.Service
	taskService         tasklife.Service
	notificationService notification.Service
	fileService         taskfile.Service

	sweeper *tasklife.Sweeper
}

// newApplication builds the store and service graph on top of an open
// database connection.
func newApplication(cfg *config.Config, db *sql.DB, logger *slog.Logger) (*application, error) {
	employeeStore := postgres.NewPostgresEmployeeStore(db, logger)
	taskStore := postgres.NewPostgresTaskStore(db, logger)
	notificationStore := postgres.NewPostgresNotificationStore(db, logger)
	taskFileStore := postgres.NewPostgresTaskFileStore(db, logger)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	staffService := staff.NewService(employeeStore, auth.NewBcryptHasher(), jwtService, logger)
	taskService := tasklife.NewService(db, taskStore, employeeStore, logger)
	notificationService := notification.NewService(taskStore, notificationStore, logger)
	fileService := taskfile.NewService(taskStore, taskFileStore, cfg.Files.Dir, logger)

	sweeper, err := tasklife.NewSweeper(taskService, cfg.Sweep.Schedule, logger)
	if err != nil {
		return nil, err
	}

	return &application{
		config:              cfg,
		logger:              logger,
		db:                  db,
		employeeStore:       employeeStore,
		taskStore:           taskStore,
		notificationStore:   notificationStore,
		taskFileStore:       taskFileStore,
		jwtService:          jwtService,
		staffService:        staffService,
		taskService:         taskService,
		notificationService: notificationService,
		fileService:         fileService,
		sweeper:             sweeper,
	}, nil
}

// cleanup releases the application's long-lived resources in reverse wiring
// order.
func (app *application) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.sweeper.Stop(ctx); err != nil {
		app.logger.Error("Failed to stop sweeper", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("Failed to close database connection", "error", err)
	}
}
