package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"taskdesk/internal/domain"
	"taskdesk/internal/platform/logger"
	"taskdesk/internal/store"
)

// taskColumns is the shared SELECT list for task queries. The assignee and
// creator are LEFT JOINed so a hard-deleted employee degrades to the
// unassigned sentinel instead of dropping the task row.
const taskColumns = `
	t.id, t.title, t.description, t.task_number, t.category,
	t.status, t.assigned_to, t.created_by, t.deadline_date,
	t.created_at, t.updated_at, t.version,
	COALESCE(e.full_name, '` + domain.UnassignedDisplayName + `') AS assignee_name,
	COALESCE(c.full_name, '') AS creator_name
	FROM tasks t
	LEFT JOIN employees e ON t.assigned_to = e.id
	LEFT JOIN employees c ON t.created_by = c.id`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore.
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TaskStore.Create.
// The status is forced to not_accepted server-side, whatever the struct says.
// Returns store.ErrTaskNumberExists on a task number collision and
// store.ErrInvalidEntity if the assignee or creator row is missing.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task.Status = domain.StatusNotAccepted
	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_number", task.TaskNumber))
		return err
	}

	query := `
		INSERT INTO tasks (title, description, task_number, category, status,
		                   assigned_to, created_by, deadline_date)
		VALUES ($1, $2, $3, $4, 'not_accepted', $5, $6, $7)
		RETURNING id, status, created_at, updated_at, version
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.TaskNumber,
		task.Category,
		task.AssignedTo,
		task.CreatedBy,
		task.DeadlineDate,
	).Scan(&task.ID, &task.Status, &task.CreatedAt, &task.UpdatedAt, &task.Version)

	if err != nil {
		if isUniqueViolation(err) && strings.Contains(constraintName(err), "task_number") {
			log.Debug("task number collision",
				slog.String("task_number", task.TaskNumber))
			return store.ErrTaskNumberExists
		}

		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("error", err.Error()),
				slog.Int64("assigned_to", task.AssignedTo),
				slog.Int64("created_by", task.CreatedBy))
			return fmt.Errorf("%w: referenced employee not found", store.ErrInvalidEntity)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_number", task.TaskNumber))
		return err
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.String("task_number", task.TaskNumber),
		slog.Int64("assigned_to", task.AssignedTo))
	return nil
}

// GetByID implements store.TaskStore.GetByID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT` + taskColumns + ` WHERE t.id = $1`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, err
	}

	return task, nil
}

// ListByAssignee implements store.TaskStore.ListByAssignee.
func (s *PostgresTaskStore) ListByAssignee(ctx context.Context, employeeID int64) ([]domain.Task, error) {
	query := `SELECT` + taskColumns + ` WHERE t.assigned_to = $1 ORDER BY t.deadline_date`
	return s.queryTasks(ctx, query, employeeID)
}

// ListByStatus implements store.TaskStore.ListByStatus.
func (s *PostgresTaskStore) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Task, error) {
	query := `SELECT` + taskColumns + ` WHERE t.status = $1 ORDER BY t.updated_at DESC`
	return s.queryTasks(ctx, query, status)
}

// ListByUpdatePeriod implements store.TaskStore.ListByUpdatePeriod.
func (s *PostgresTaskStore) ListByUpdatePeriod(ctx context.Context, start, end time.Time) ([]domain.Task, error) {
	query := `SELECT` + taskColumns + `
		WHERE t.updated_at BETWEEN $1 AND $2
		ORDER BY t.assigned_to, t.updated_at`
	return s.queryTasks(ctx, query, start, end)
}

// ListAll implements store.TaskStore.ListAll.
func (s *PostgresTaskStore) ListAll(ctx context.Context) ([]domain.Task, error) {
	query := `SELECT` + taskColumns + ` ORDER BY t.deadline_date`
	return s.queryTasks(ctx, query)
}

// ListCompleted implements store.TaskStore.ListCompleted.
func (s *PostgresTaskStore) ListCompleted(ctx context.Context) ([]domain.Task, error) {
	query := `SELECT` + taskColumns + ` WHERE t.status = 'completed' ORDER BY t.updated_at DESC`
	return s.queryTasks(ctx, query)
}

// ListDue implements store.TaskStore.ListDue.
// Feeds the deadline sweep: tasks not yet completed or accepted whose
// deadline date has arrived or passed.
func (s *PostgresTaskStore) ListDue(ctx context.Context, date time.Time) ([]domain.Task, error) {
	query := `SELECT` + taskColumns + `
		WHERE t.status IN ('not_accepted', 'in_progress')
		  AND t.deadline_date::date <= $1::date
		ORDER BY t.deadline_date`
	return s.queryTasks(ctx, query, domain.DateOnly(date))
}

// UpdateStatus implements store.TaskStore.UpdateStatus.
// Compare-and-swap on the version column; stamps updated_at.
// Returns store.ErrTaskNotFound if the task is gone and
// store.ErrVersionConflict if a concurrent writer got there first.
func (s *PostgresTaskStore) UpdateStatus(ctx context.Context, id int64, status domain.Status, expectedVersion int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.IsValid() {
		return domain.ErrInvalidStatus
	}

	query := `
		UPDATE tasks
		SET status = $1, updated_at = CURRENT_TIMESTAMP, version = version + 1
		WHERE id = $2 AND version = $3
	`

	if err := s.execVersioned(ctx, query, id, status, expectedVersion); err != nil {
		return err
	}

	log.Info("task status updated",
		slog.Int64("task_id", id),
		slog.String("status", string(status)))
	return nil
}

// UpdateDescription implements store.TaskStore.UpdateDescription.
// Deliberately does not stamp updated_at: only status changes move the
// update timestamp the reports filter on.
func (s *PostgresTaskStore) UpdateDescription(ctx context.Context, id int64, description string, expectedVersion int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET description = $1, version = version + 1
		WHERE id = $2 AND version = $3
	`

	if err := s.execVersioned(ctx, query, id, description, expectedVersion); err != nil {
		return err
	}

	log.Debug("task description updated", slog.Int64("task_id", id))
	return nil
}

// execVersioned runs a CAS update shaped as (value, id, expectedVersion) and
// turns a zero-row result into not-found or version-conflict.
func (s *PostgresTaskStore) execVersioned(ctx context.Context, query string, id int64, value any, expectedVersion int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, query, value, id, expectedVersion)
	if err != nil {
		log.Error("failed to execute versioned task update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected > 0 {
		return nil
	}

	// Zero rows: either the task is gone or the version moved.
	var exists bool
	err = s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check task existence: %w", err)
	}

	if !exists {
		return store.ErrTaskNotFound
	}

	log.Warn("version conflict on task update",
		slog.Int64("task_id", id),
		slog.Int64("expected_version", expectedVersion))
	return store.ErrVersionConflict
}

func (s *PostgresTaskStore) queryTasks(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var status string
	var description sql.NullString

	err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&task.TaskNumber,
		&task.Category,
		&status,
		&task.AssignedTo,
		&task.CreatedBy,
		&task.DeadlineDate,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.Version,
		&task.AssigneeName,
		&task.CreatorName,
	)
	if err != nil {
		return nil, err
	}

	task.Description = description.String
	task.Status = domain.Status(status)
	return &task, nil
}
