// Package taskfile stores report files on disk and records path references
// for them. Only the latest upload per task is ever surfaced.
package taskfile

import (
	"context"
	"errors"
	"io"

	"taskdesk/internal/domain"
)

// Service provides report file upload and retrieval for tasks.
type Service interface {
	// Attach saves the uploaded content under the configured directory and
	// records the path reference. Only the task's assignee may attach; a
	// re-upload supersedes earlier files without deleting them.
	Attach(ctx context.Context, caller *domain.Employee, taskID int64, fileName string, content io.Reader) (*domain.TaskFile, error)

	// Latest returns the most recent file reference for the task, for any
	// authenticated viewer.
	Latest(ctx context.Context, taskID int64) (*domain.TaskFile, error)

	// Open opens the stored content of a file reference for reading.
	// The caller closes the returned reader.
	Open(ctx context.Context, file *domain.TaskFile) (io.ReadCloser, error)

	// HasFile reports whether the task has at least one uploaded file.
	HasFile(ctx context.Context, taskID int64) (bool, error)
}

var (
	// ErrTaskNotFound indicates the task does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrFileNotFound indicates no file was uploaded for the task, or the
	// stored content is gone from disk.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates the caller is not the task's assignee.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrEmptyFile indicates an upload with no content.
	ErrEmptyFile = errors.New("uploaded file is empty")
)
