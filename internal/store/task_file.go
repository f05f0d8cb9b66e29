package store

import (
	"context"

	"taskdesk/internal/domain"
)

// TaskFileStore persists path references to uploaded report files.
type TaskFileStore interface {
	// Record saves a new file reference for a task. Earlier rows for the
	// same task are kept; history is cheap and only the latest is surfaced.
	// Returns ErrInvalidEntity if the task does not exist.
	Record(ctx context.Context, file *domain.TaskFile) error

	// LatestForTask returns the most recent file reference for the task by
	// upload time. Returns ErrTaskFileNotFound if nothing was uploaded.
	LatestForTask(ctx context.Context, taskID int64) (*domain.TaskFile, error)
}
