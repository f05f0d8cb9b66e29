package domain

import "time"

// NotificationType distinguishes the two kinds of derived notifications.
type NotificationType string

const (
	// NotificationCompletedTask tells an admin or director that an executor
	// submitted a task for review.
	NotificationCompletedTask NotificationType = "completed_task"

	// NotificationNewTask tells an executor about a task assigned to them
	// that they have not accepted yet.
	NotificationNewTask NotificationType = "new_task"
)

// IsValid reports whether the notification type is known.
func (t NotificationType) IsValid() bool {
	return t == NotificationCompletedTask || t == NotificationNewTask
}

// Notification is a transient "needs attention" item derived from task state
// on every read. It is not a durable entity: only the read marker (the
// (task_id, notification_type) pair with is_read) is persisted, and it exists
// solely to suppress re-derivation of an already-seen notification.
type Notification struct {
	TaskID     int64            `json:"task_id"`
	TaskNumber string           `json:"task_number"`
	Type       NotificationType `json:"type"`
	Message    string           `json:"message"`
	Deadline   time.Time        `json:"deadline"`
	CreatedAt  time.Time        `json:"created_at"`
}

// ReadMarker is the persisted read/dismissed flag for a derived notification.
type ReadMarker struct {
	TaskID int64
	Type   NotificationType
}
