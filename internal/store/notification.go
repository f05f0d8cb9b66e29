package store

import (
	"context"

	"taskdesk/internal/domain"
)

// NotificationStore persists read markers for derived notifications.
// Notifications themselves are never stored; they are re-derived from task
// state on every read and suppressed by these markers.
type NotificationStore interface {
	// ListReadMarkers returns the set of (task, type) pairs already marked
	// read, keyed for O(1) suppression checks during derivation.
	ListReadMarkers(ctx context.Context) (map[domain.ReadMarker]bool, error)

	// MarkRead upserts the read marker for the given task and type:
	// inserted with is_read=true if absent, updated to is_read=true if
	// present.
	MarkRead(ctx context.Context, taskID int64, notificationType domain.NotificationType) error
}
