package taskfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"taskdesk/internal/domain"
	"taskdesk/internal/platform/logger"
	"taskdesk/internal/store"
)

var _ Service = (*diskService)(nil)

// diskService stores content under baseDir and path references in the
// database.
type diskService struct {
	tasks   store.TaskStore
	files   store.TaskFileStore
	baseDir string
	logger  *slog.Logger
}

// NewService creates the file Service. baseDir is created on first upload.
func NewService(tasks store.TaskStore, files store.TaskFileStore, baseDir string, log *slog.Logger) Service {
	if tasks == nil {
		panic("tasks store cannot be nil")
	}
	if files == nil {
		panic("task file store cannot be nil")
	}
	if baseDir == "" {
		panic("base directory cannot be empty")
	}
	if log == nil {
		log = slog.Default()
	}

	return &diskService{
		tasks:   tasks,
		files:   files,
		baseDir: baseDir,
		logger:  log.With(slog.String("component", "taskfile_service")),
	}
}

// Attach implements Service.Attach.
func (s *diskService) Attach(ctx context.Context, caller *domain.Employee, taskID int64, fileName string, content io.Reader) (*domain.TaskFile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	if task.AssignedTo != caller.ID {
		log.Warn("file upload denied: caller is not the assignee",
			slog.Int64("task_id", taskID),
			slog.Int64("caller_id", caller.ID))
		return nil, ErrPermissionDenied
	}

	// The client-supplied name is display-only; the stored name is ours.
	fileName = filepath.Base(strings.TrimSpace(fileName))
	if fileName == "" || fileName == "." || fileName == string(filepath.Separator) {
		return nil, domain.ErrEmptyFileName
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	storedName := uuid.NewString() + filepath.Ext(fileName)
	storedPath := filepath.Join(s.baseDir, storedName)

	written, err := s.writeFile(storedPath, content)
	if err != nil {
		return nil, err
	}
	if written == 0 {
		_ = os.Remove(storedPath)
		return nil, ErrEmptyFile
	}

	file, err := domain.NewTaskFile(taskID, fileName, storedPath, caller.ID)
	if err != nil {
		_ = os.Remove(storedPath)
		return nil, err
	}

	if err := s.files.Record(ctx, file); err != nil {
		_ = os.Remove(storedPath)
		return nil, fmt.Errorf("failed to record file reference: %w", err)
	}

	log.Info("file attached",
		slog.Int64("task_id", taskID),
		slog.String("file_name", fileName),
		slog.Int64("size_bytes", written))
	return file, nil
}

// Latest implements Service.Latest.
func (s *diskService) Latest(ctx context.Context, taskID int64) (*domain.TaskFile, error) {
	file, err := s.files.LatestForTask(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to load file reference: %w", err)
	}
	return file, nil
}

// Open implements Service.Open.
func (s *diskService) Open(ctx context.Context, file *domain.TaskFile) (io.ReadCloser, error) {
	f, err := os.Open(file.FilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// The reference outlived the content.
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return f, nil
}

// HasFile implements Service.HasFile.
func (s *diskService) HasFile(ctx context.Context, taskID int64) (bool, error) {
	_, err := s.files.LatestForTask(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check for files: %w", err)
	}
	return true, nil
}

func (s *diskService) writeFile(path string, content io.Reader) (int64, error) {
	dst, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(dst, content)
	if err != nil {
		dst.Close()
		_ = os.Remove(path)
		return 0, fmt.Errorf("failed to write file: %w", err)
	}

	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("failed to close file: %w", err)
	}
	return written, nil
}
