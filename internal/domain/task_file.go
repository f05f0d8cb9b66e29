package domain

import (
	"errors"
	"time"
)

// TaskFile-specific validation errors.
var (
	ErrEmptyFileName = errors.New("file name cannot be empty")
	ErrEmptyFilePath = errors.New("file path cannot be empty")
)

// TaskFile is a path reference to a report file uploaded for a task.
// Multiple rows may accumulate per task; only the latest by upload time is
// ever surfaced. Content is stored on disk, not in the database.
type TaskFile struct {
	ID         int64     `json:"id"`
	TaskID     int64     `json:"task_id"`
	FileName   string    `json:"file_name"`
	FilePath   string    `json:"file_path"`
	UploadedBy int64     `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// NewTaskFile creates a new TaskFile reference.
// Returns an error if validation fails.
func NewTaskFile(taskID int64, fileName, filePath string, uploadedBy int64) (*TaskFile, error) {
	f := &TaskFile{
		TaskID:     taskID,
		FileName:   fileName,
		FilePath:   filePath,
		UploadedBy: uploadedBy,
		UploadedAt: time.Now().UTC(),
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}

	return f, nil
}

// Validate checks if the TaskFile has valid data.
func (f *TaskFile) Validate() error {
	if f.TaskID == 0 {
		return ErrInvalidID
	}

	if f.FileName == "" {
		return ErrEmptyFileName
	}

	if f.FilePath == "" {
		return ErrEmptyFilePath
	}

	return nil
}
