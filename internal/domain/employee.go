package domain

import (
	"errors"
	"strings"
	"time"
)

// Role identifies what an employee is allowed to do in the system.
type Role string

// Known employee roles.
const (
	RoleExecutor Role = "executor"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
	RoleDirector Role = "director"
)

// Employee-specific validation errors.
var (
	ErrEmptyLogin          = errors.New("login cannot be empty")
	ErrEmptyFullName       = errors.New("full name cannot be empty")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleExecutor, RoleManager, RoleAdmin, RoleDirector:
		return true
	}
	return false
}

// CanManageTasks reports whether the role may create tasks and approve or
// reject completed work.
func (r Role) CanManageTasks() bool {
	return r == RoleManager || r == RoleAdmin || r == RoleDirector
}

// CanAdministerAccounts reports whether the role may create and deactivate
// employee accounts.
func (r Role) CanAdministerAccounts() bool {
	return r == RoleAdmin || r == RoleDirector
}

// DisplayName returns the human-facing Russian name of the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleAdmin:
		return "Администратор"
	case RoleDirector:
		return "Директор"
	case RoleManager:
		return "Менеджер"
	default:
		return "Исполнитель"
	}
}

// Employee represents a registered employee of the system.
// Soft-deleted employees keep their rows but have IsActive set to false and
// are excluded from lookups and assignment pools.
type Employee struct {
	ID             int64     `json:"id"`
	Login          string    `json:"login"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during creation
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	FullName       string    `json:"full_name"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	IsActive       bool      `json:"is_active"`
}

// NewEmployee creates a new active Employee with the given login, full name,
// role and plaintext password. The caller is responsible for hashing the
// password before storing the employee. Returns an error if validation fails.
func NewEmployee(login, fullName string, role Role, password string) (*Employee, error) {
	e := &Employee{
		Login:     strings.TrimSpace(login),
		Password:  password,
		FullName:  strings.TrimSpace(fullName),
		Role:      role,
		CreatedAt: time.Now().UTC(),
		IsActive:  true,
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}

	return e, nil
}

// Validate checks if the Employee has valid data.
// Returns an error if any field fails validation.
func (e *Employee) Validate() error {
	if e.Login == "" {
		return ErrEmptyLogin
	}

	if e.FullName == "" {
		return ErrEmptyFullName
	}

	if !e.Role.IsValid() {
		return ErrInvalidRole
	}

	// Either a plaintext password (pre-hash, during creation) or a stored
	// hash must be present.
	if e.Password == "" && e.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}
