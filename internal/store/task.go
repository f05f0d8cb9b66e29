package store

import (
	"context"
	"database/sql"
	"time"

	"taskdesk/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// All list operations LEFT JOIN the assignee (and, where noted, the creator)
// so display names come back with the rows; a missing assignee surfaces as
// the domain.UnassignedDisplayName sentinel, never as an empty string.
type TaskStore interface {
	// Create saves a new task. The status is forced to not_accepted on the
	// way in regardless of the value on the struct, and the generated ID and
	// timestamps are written back to it.
	// Returns ErrTaskNumberExists if the task number collides.
	// Returns ErrInvalidEntity if the assignee or creator does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by ID with assignee and creator names.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// ListByAssignee returns tasks assigned to the employee, ordered by
	// deadline.
	ListByAssignee(ctx context.Context, employeeID int64) ([]domain.Task, error)

	// ListByStatus returns tasks in the given persisted status, most recently
	// updated first.
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Task, error)

	// ListByUpdatePeriod returns tasks whose updated_at falls in [start, end],
	// ordered by assignee then update time. Used by reports.
	ListByUpdatePeriod(ctx context.Context, start, end time.Time) ([]domain.Task, error)

	// ListAll returns every task ordered by deadline.
	ListAll(ctx context.Context) ([]domain.Task, error)

	// ListCompleted returns tasks in completed status with both assignee and
	// creator names, most recently updated first.
	ListCompleted(ctx context.Context) ([]domain.Task, error)

	// ListDue returns tasks still in not_accepted or in_progress whose
	// deadline date is on or before the given date. Input for the sweep.
	ListDue(ctx context.Context, date time.Time) ([]domain.Task, error)

	// UpdateStatus sets the task status and stamps updated_at, guarded by a
	// compare-and-swap on the version column.
	// Returns ErrTaskNotFound if the task does not exist.
	// Returns ErrVersionConflict if the row moved past expectedVersion.
	UpdateStatus(ctx context.Context, id int64, status domain.Status, expectedVersion int64) error

	// UpdateDescription replaces the task description. It does not stamp
	// updated_at; only status changes do. Same CAS contract as UpdateStatus.
	UpdateDescription(ctx context.Context, id int64, description string, expectedVersion int64) error

	// WithTx returns a TaskStore bound to the given transaction so multiple
	// writes can commit or roll back together.
	WithTx(tx *sql.Tx) TaskStore
}
