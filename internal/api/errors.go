package api

import (
	"errors"
	"net/http"
	"strings"

	"taskdesk/internal/api/shared"
	"taskdesk/internal/domain"
	"taskdesk/internal/service/auth"
	"taskdesk/internal/service/notification"
	"taskdesk/internal/service/staff"
	"taskdesk/internal/service/taskfile"
	"taskdesk/internal/service/tasklife"
	"taskdesk/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, staff.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, tasklife.ErrPermissionDenied),
		errors.Is(err, notification.ErrPermissionDenied),
		errors.Is(err, taskfile.ErrPermissionDenied),
		errors.Is(err, staff.ErrPermissionDenied):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, tasklife.ErrTaskNotFound),
		errors.Is(err, taskfile.ErrTaskNotFound),
		errors.Is(err, taskfile.ErrFileNotFound),
		errors.Is(err, staff.ErrEmployeeNotFound),
		store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, staff.ErrLoginTaken),
		errors.Is(err, tasklife.ErrConflict),
		errors.Is(err, store.ErrVersionConflict),
		store.IsDuplicateError(err):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, tasklife.ErrInvalidTransition),
		errors.Is(err, tasklife.ErrCommentRequired),
		errors.Is(err, tasklife.ErrInvalidAssignee),
		errors.Is(err, notification.ErrInvalidType),
		errors.Is(err, taskfile.ErrEmptyFile),
		errors.Is(err, staff.ErrSelfDeactivation),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrDeadlineInPast),
		errors.Is(err, store.ErrInvalidEntity),
		isDomainValidationError(err):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"
	case errors.Is(err, staff.ErrInvalidCredentials):
		return "Invalid login or password"

	case errors.Is(err, tasklife.ErrPermissionDenied),
		errors.Is(err, notification.ErrPermissionDenied),
		errors.Is(err, taskfile.ErrPermissionDenied),
		errors.Is(err, staff.ErrPermissionDenied):
		return "You are not allowed to perform this action"

	case errors.Is(err, tasklife.ErrTaskNotFound),
		errors.Is(err, taskfile.ErrTaskNotFound),
		errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, taskfile.ErrFileNotFound),
		errors.Is(err, store.ErrTaskFileNotFound):
		return "No file uploaded for this task"
	case errors.Is(err, staff.ErrEmployeeNotFound),
		errors.Is(err, store.ErrEmployeeNotFound):
		return "Employee not found"

	case errors.Is(err, staff.ErrLoginTaken),
		errors.Is(err, store.ErrLoginExists):
		return "Login is already taken"
	case errors.Is(err, tasklife.ErrConflict),
		errors.Is(err, store.ErrVersionConflict):
		return "The task was modified by someone else, reload and retry"

	case errors.Is(err, tasklife.ErrInvalidTransition):
		return "The task status does not allow this action"
	case errors.Is(err, tasklife.ErrCommentRequired):
		return "A comment is required to reject a task"
	case errors.Is(err, tasklife.ErrInvalidAssignee):
		return "Assignee is not an active employee"
	case errors.Is(err, domain.ErrDeadlineInPast):
		return "Deadline cannot be in the past"
	case errors.Is(err, domain.ErrInvalidCategory):
		return "Unknown task category"
	case errors.Is(err, domain.ErrInvalidRole):
		return "Unknown employee role"
	case errors.Is(err, domain.ErrInvalidStatus):
		return "Unknown task status"
	case errors.Is(err, notification.ErrInvalidType):
		return "Unknown notification type"
	case errors.Is(err, taskfile.ErrEmptyFile):
		return "Uploaded file is empty"
	case errors.Is(err, staff.ErrSelfDeactivation):
		return "You cannot deactivate your own account"

	default:
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return "Invalid " + vErr.Field + ": " + vErr.Message
		}
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps a service error to an HTTP response. When userMessage
// is empty the sanitized message derived from the error is used.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}

// SanitizeValidationError turns a go-playground validation error into a short
// client-safe message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// "Key: 'LoginRequest.Login' Error:Field validation for 'Login'
		// failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return "Invalid " + field + ": " + validationTagMessage(tag)
				}
				return "Invalid " + field
			}
		}
	}

	return "Validation error"
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "gt":
		return "must be positive"
	default:
		return "validation failed"
	}
}

func isDomainValidationError(err error) bool {
	var vErr *domain.ValidationError
	return errors.As(err, &vErr)
}
