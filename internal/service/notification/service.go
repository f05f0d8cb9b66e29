// Package notification derives "needs attention" items from task state.
//
// Notifications are not stored. Each read re-derives them from the current
// tasks and drops the ones whose (task, type) read marker is set; marking one
// read is the only write this package ever does.
package notification

import (
	"context"
	"errors"

	"taskdesk/internal/domain"
)

// Service derives notifications for a viewer and records read markers.
type Service interface {
	// ListForViewer derives the viewer's current notifications:
	//
	//	admin, director: one completed_task item per submitted task
	//	executor:        one new_task item per own unaccepted task
	//	manager:         nothing
	//
	// Items whose read marker is set are suppressed.
	ListForViewer(ctx context.Context, viewer *domain.Employee) ([]domain.Notification, error)

	// MarkRead sets the read marker for one (task, type) pair. The viewer
	// must hold a role that can see the given type.
	MarkRead(ctx context.Context, viewer *domain.Employee, taskID int64, notificationType domain.NotificationType) error
}

var (
	// ErrInvalidType indicates an unknown notification type.
	ErrInvalidType = errors.New("invalid notification type")

	// ErrPermissionDenied indicates the viewer's role cannot see the
	// notification type it tried to mark read.
	ErrPermissionDenied = errors.New("permission denied")
)
