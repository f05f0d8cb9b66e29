// Package tasklife implements the task lifecycle state machine: who may move
// a task between statuses, and when the deadline sweeps happen.
//
// Every operation takes the authenticated caller explicitly. Authorization is
// enforced here, not in any client: hiding a button is not a security
// boundary, so an unauthorized call fails with ErrPermissionDenied no matter
// what the client showed.
package tasklife

import (
	"context"
	"errors"
	"time"

	"taskdesk/internal/domain"
)

// CreateTaskInput carries the caller-supplied fields for a new task.
// Status and task number are never caller-supplied: the status is forced to
// not_accepted and the number is generated (and regenerated on collision).
type CreateTaskInput struct {
	Title       string
	Description string
	Category    string
	AssignedTo  int64
	Deadline    time.Time
}

// Service provides the task lifecycle operations.
//
// State machine:
//
//	not_accepted -> in_progress   (assignee accepts, or deadline arrives)
//	not_accepted -> overdue       (deadline passed)
//	in_progress  -> overdue       (deadline passed)
//	in_progress  -> completed     (assignee submits report)
//	overdue      -> completed     (assignee submits report)
//	completed    -> accepted      (creator with a managing role approves)
//	completed    -> not_accepted  (creator with a managing role rejects,
//	                               comment appended to the description)
//
// accepted is terminal. Reject is the only backward transition.
type Service interface {
	// CreateTask creates a new task in not_accepted status.
	// The caller must hold a managing role (manager, admin or director) and
	// the assignee must be an active employee. The deadline may not be in
	// the past.
	CreateTask(ctx context.Context, caller *domain.Employee, input CreateTaskInput) (*domain.Task, error)

	// Accept moves a not_accepted task to in_progress.
	// Only the assigned executor may accept.
	Accept(ctx context.Context, caller *domain.Employee, taskID int64) (*domain.Task, error)

	// Complete moves an in_progress or overdue task to completed.
	// Only the assigned executor may complete. Completing without an
	// uploaded report file is allowed; warning the operator about it is the
	// client's concern.
	Complete(ctx context.Context, caller *domain.Employee, taskID int64) (*domain.Task, error)

	// Approve moves a completed task to the terminal accepted status.
	// The caller must hold a managing role AND be the task's creator.
	Approve(ctx context.Context, caller *domain.Employee, taskID int64) (*domain.Task, error)

	// Reject moves a completed task back to not_accepted, appending the
	// mandatory reviewer comment to the task description. The append and
	// the status change commit in a single transaction.
	// Same authorization as Approve.
	Reject(ctx context.Context, caller *domain.Employee, taskID int64, comment string) (*domain.Task, error)

	// SweepDue persists the deadline transitions for every task whose
	// deadline has arrived: past-deadline tasks become overdue, tasks due
	// today that were never accepted become in_progress. Tasks already
	// completed or accepted are never touched. Idempotent; concurrent
	// sweeps converge because every write is a compare-and-swap.
	// Returns the number of tasks updated.
	SweepDue(ctx context.Context, now time.Time) (int, error)

	// Get returns a single task with its read-time effective status.
	Get(ctx context.Context, taskID int64) (*domain.Task, error)

	// ListAll, ListMine, ListByStatus, ListByUpdatePeriod and ListCompleted
	// return tasks for display. All of them project the read-time effective
	// status (overdue for past deadlines) WITHOUT writing anything; the
	// persisted transition is SweepDue's job alone.
	ListAll(ctx context.Context) ([]domain.Task, error)
	ListMine(ctx context.Context, caller *domain.Employee) ([]domain.Task, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Task, error)
	ListByUpdatePeriod(ctx context.Context, start, end time.Time) ([]domain.Task, error)
	ListCompleted(ctx context.Context) ([]domain.Task, error)
}

// Common error types for the lifecycle service.
var (
	// ErrTaskNotFound indicates that the task does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrPermissionDenied indicates the caller is not allowed to perform
	// the transition: wrong role, not the assignee, or not the creator.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidTransition indicates the task is not in a status the
	// requested transition may leave from.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrCommentRequired indicates a reject was attempted without the
	// mandatory reviewer comment.
	ErrCommentRequired = errors.New("reject comment is required")

	// ErrInvalidAssignee indicates the assignee does not exist or is
	// deactivated; deactivated employees leave the assignment pool.
	ErrInvalidAssignee = errors.New("assignee is not an active employee")

	// ErrConflict indicates a concurrent writer changed the task between
	// the read and the write. The caller should reload and retry.
	ErrConflict = errors.New("task was modified concurrently")
)
