// Package staff handles authentication and employee account management.
// Role checks live here, not in any client.
package staff

import (
	"context"
	"errors"

	"taskdesk/internal/domain"
)

// RegisterInput carries the fields for a new employee account.
type RegisterInput struct {
	Login    string
	Password string
	FullName string
	Role     domain.Role
}

// Service provides login and employee account operations.
type Service interface {
	// Authenticate verifies login and password against the stored digest
	// and returns the employee with a signed access token. Deactivated
	// accounts cannot log in. A missing login and a wrong password are
	// indistinguishable to the caller.
	Authenticate(ctx context.Context, login, password string) (*domain.Employee, string, error)

	// Register creates a new active employee. Only admins and directors may
	// create accounts. The password is hashed before it reaches the store.
	Register(ctx context.Context, caller *domain.Employee, input RegisterInput) (*domain.Employee, error)

	// ListActive returns all active employees ordered by full name.
	ListActive(ctx context.Context) ([]domain.Employee, error)

	// Deactivate soft-deletes an employee. Only admins and directors may
	// deactivate, and nobody may deactivate themselves.
	Deactivate(ctx context.Context, caller *domain.Employee, employeeID int64) error
}

var (
	// ErrInvalidCredentials indicates a failed login. Deliberately covers
	// both unknown logins and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid login or password")

	// ErrPermissionDenied indicates the caller's role does not allow the
	// account operation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrLoginTaken indicates the login is already registered.
	ErrLoginTaken = errors.New("login is already taken")

	// ErrEmployeeNotFound indicates the employee does not exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrSelfDeactivation indicates an attempt to deactivate one's own
	// account.
	ErrSelfDeactivation = errors.New("cannot deactivate own account")
)
