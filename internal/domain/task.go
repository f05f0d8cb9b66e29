package domain

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

// Status is the lifecycle state of a task.
type Status string

// Task lifecycle statuses. StatusAccepted is terminal: no transition leaves it.
const (
	StatusNotAccepted Status = "not_accepted"
	StatusInProgress  Status = "in_progress"
	StatusCompleted   Status = "completed"
	StatusAccepted    Status = "accepted"
	StatusOverdue     Status = "overdue"
)

// UnassignedDisplayName is shown in place of the assignee name when the
// assignee row is missing (for example after a hard delete in the database).
const UnassignedDisplayName = "Не назначен"

// Task-specific validation errors.
var (
	ErrEmptyTitle      = errors.New("task title cannot be empty")
	ErrEmptyTaskNumber = errors.New("task number cannot be empty")
	ErrMissingAssignee = errors.New("task assignee cannot be empty")
	ErrMissingCreator  = errors.New("task creator cannot be empty")
	ErrZeroDeadline    = errors.New("task deadline date cannot be zero")
)

// Categories is the fixed set of task categories offered by clients.
var Categories = []string{
	"Разработка",
	"Документы",
	"Отчет",
	"Проверка",
	"Совещание",
	"Прочее",
}

// IsValid reports whether the status is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusNotAccepted, StatusInProgress, StatusCompleted, StatusAccepted, StatusOverdue:
		return true
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusAccepted
}

// DisplayName returns the human-facing Russian name of the status.
func (s Status) DisplayName() string {
	switch s {
	case StatusNotAccepted:
		return "Не принята"
	case StatusInProgress:
		return "В работе"
	case StatusCompleted:
		return "Сдана"
	case StatusAccepted:
		return "Выполнена"
	case StatusOverdue:
		return "Просрочена"
	default:
		return string(s)
	}
}

// IsValidCategory reports whether the category is in the fixed set.
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Task represents a unit of work assigned to an employee.
//
// Version is the optimistic-concurrency counter: every status or description
// mutation must compare-and-swap on it, so a stale writer gets a conflict
// instead of silently clobbering a concurrent change.
type Task struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	TaskNumber   string    `json:"task_number"`
	Category     string    `json:"category"`
	Status       Status    `json:"status"`
	AssignedTo   int64     `json:"assigned_to"`
	CreatedBy    int64     `json:"created_by"`
	DeadlineDate time.Time `json:"deadline_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Version      int64     `json:"version"`

	// Display enrichment from LEFT JOINs; not every query populates both.
	AssigneeName string `json:"assignee_name,omitempty"`
	CreatorName  string `json:"creator_name,omitempty"`
}

// NewTask creates a new Task in the initial not_accepted status with a freshly
// generated task number. The status is forced regardless of what the caller
// intends to store. Returns an error if validation fails.
func NewTask(title, description, category string, assignedTo, createdBy int64, deadline time.Time) (*Task, error) {
	now := time.Now().UTC()
	t := &Task{
		Title:        title,
		Description:  description,
		TaskNumber:   NewTaskNumber(),
		Category:     category,
		Status:       StatusNotAccepted,
		AssignedTo:   assignedTo,
		CreatedBy:    createdBy,
		DeadlineDate: deadline,
		CreatedAt:    now,
		UpdatedAt:    now,
		Version:      1,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrEmptyTitle
	}

	if t.TaskNumber == "" {
		return ErrEmptyTaskNumber
	}

	if !IsValidCategory(t.Category) {
		return ErrInvalidCategory
	}

	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}

	if t.AssignedTo == 0 {
		return ErrMissingAssignee
	}

	if t.CreatedBy == 0 {
		return ErrMissingCreator
	}

	if t.DeadlineDate.IsZero() {
		return ErrZeroDeadline
	}

	return nil
}

// EffectiveStatus returns the status a viewer should see at the given moment,
// without mutating anything. Tasks past their deadline project to overdue and
// tasks due today that were never accepted project to in_progress, unless the
// task already reached completed or accepted.
func (t *Task) EffectiveStatus(now time.Time) Status {
	if t.Status == StatusCompleted || t.Status == StatusAccepted {
		return t.Status
	}

	today := DateOnly(now)
	deadline := DateOnly(t.DeadlineDate)

	if deadline.Before(today) {
		return StatusOverdue
	}

	if deadline.Equal(today) && t.Status == StatusNotAccepted {
		return StatusInProgress
	}

	return t.Status
}

// DateOnly truncates a timestamp to its UTC calendar date.
// Deadline comparisons are date-level, never time-level.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewTaskNumber generates a random 7-digit task number. Uniqueness is enforced
// by the database index, not here; callers retry on a duplicate.
func NewTaskNumber() string {
	n, err := rand.Int(rand.Reader, big.NewInt(9000000))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// fall back to a timestamp-derived number rather than a constant.
		return fmt.Sprintf("%07d", time.Now().UnixNano()%9000000+1000000)
	}
	return fmt.Sprintf("%07d", n.Int64()+1000000)
}
