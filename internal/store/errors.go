package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors (e.g., ErrEmployeeNotFound, ErrTaskNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate of
	// a unique entity (e.g., an employee with the same login).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or references a row that does not exist.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrVersionConflict is returned when a compare-and-swap update finds the
	// row at a different version than the caller expected. The caller must
	// re-read and retry or give up; the store never retries.
	ErrVersionConflict = errors.New("version conflict")

	// ErrTransactionFailed is returned when a database transaction fails to
	// commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrEmployeeNotFound indicates that the requested employee does not
	// exist or is deactivated.
	ErrEmployeeNotFound = fmt.Errorf("%w: employee", ErrNotFound)

	// ErrTaskNotFound indicates that the requested task does not exist.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)

	// ErrTaskFileNotFound indicates that the task has no uploaded files.
	ErrTaskFileNotFound = fmt.Errorf("%w: task file", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrLoginExists indicates that an employee with the given login already
	// exists.
	ErrLoginExists = fmt.Errorf("%w: login", ErrDuplicate)

	// ErrTaskNumberExists indicates the generated task number collided with
	// an existing one; the caller regenerates and retries.
	ErrTaskNumberExists = fmt.Errorf("%w: task number", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
