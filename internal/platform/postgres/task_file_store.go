package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"taskdesk/internal/domain"
	"taskdesk/internal/platform/logger"
	"taskdesk/internal/store"
)

// PostgresTaskFileStore implements the store.TaskFileStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskFileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskFileStore creates a new PostgreSQL implementation of the
// TaskFileStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTaskFileStore(db store.DBTX, logger *slog.Logger) *PostgresTaskFileStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskFileStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_file_store")),
	}
}

// Ensure PostgresTaskFileStore implements store.TaskFileStore.
var _ store.TaskFileStore = (*PostgresTaskFileStore)(nil)

// Record implements store.TaskFileStore.Record.
// Returns store.ErrInvalidEntity if the task does not exist.
func (s *PostgresTaskFileStore) Record(ctx context.Context, file *domain.TaskFile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := file.Validate(); err != nil {
		log.Warn("task file validation failed",
			slog.String("error", err.Error()),
			slog.Int64("task_id", file.TaskID))
		return err
	}

	query := `
		INSERT INTO task_files (task_id, file_name, file_path, uploaded_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, uploaded_at
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		file.TaskID,
		file.FileName,
		file.FilePath,
		file.UploadedBy,
	).Scan(&file.ID, &file.UploadedAt)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: task with ID %d not found", store.ErrInvalidEntity, file.TaskID)
		}

		log.Error("failed to record task file",
			slog.String("error", err.Error()),
			slog.Int64("task_id", file.TaskID),
			slog.String("file_name", file.FileName))
		return err
	}

	log.Info("task file recorded",
		slog.Int64("task_id", file.TaskID),
		slog.String("file_name", file.FileName))
	return nil
}

// LatestForTask implements store.TaskFileStore.LatestForTask.
// Historical rows stay in place; only the newest upload is surfaced.
// Returns store.ErrTaskFileNotFound if the task has no files.
func (s *PostgresTaskFileStore) LatestForTask(ctx context.Context, taskID int64) (*domain.TaskFile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, task_id, file_name, file_path, uploaded_by, uploaded_at
		FROM task_files
		WHERE task_id = $1
		ORDER BY uploaded_at DESC
		LIMIT 1
	`

	var file domain.TaskFile
	err := s.db.QueryRowContext(ctx, query, taskID).Scan(
		&file.ID,
		&file.TaskID,
		&file.FileName,
		&file.FilePath,
		&file.UploadedBy,
		&file.UploadedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskFileNotFound
		}
		log.Error("failed to get latest task file",
			slog.String("error", err.Error()),
			slog.Int64("task_id", taskID))
		return nil, err
	}

	return &file, nil
}
