package store

import (
	"context"

	"taskdesk/internal/domain"
)

// EmployeeStore defines the interface for employee data persistence.
type EmployeeStore interface {
	// Create saves a new employee to the store. The employee must already
	// carry a HashedPassword; plaintext passwords never reach the store.
	// Returns ErrLoginExists if the login is already taken.
	Create(ctx context.Context, employee *domain.Employee) error

	// GetByID retrieves an employee by ID, active or not.
	// Returns ErrEmployeeNotFound if the employee does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)

	// GetByLogin retrieves an active employee by login.
	// Deactivated employees are invisible to this lookup.
	// Returns ErrEmployeeNotFound if no active employee matches.
	GetByLogin(ctx context.Context, login string) (*domain.Employee, error)

	// ListActive returns all active employees ordered by full name.
	ListActive(ctx context.Context) ([]domain.Employee, error)

	// Deactivate soft-deletes an employee by flipping the active flag.
	// Rows referencing the employee are left untouched.
	// Returns ErrEmployeeNotFound if the employee does not exist.
	Deactivate(ctx context.Context, id int64) error
}
