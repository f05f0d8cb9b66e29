package postgres

import (
	"context"
	"log/slog"

	"taskdesk/internal/domain"
	"taskdesk/internal/platform/logger"
	"taskdesk/internal/store"
)

// PostgresNotificationStore implements the store.NotificationStore interface
// using a PostgreSQL database as the storage backend. Only read markers live
// in the table; notifications themselves are derived views.
type PostgresNotificationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresNotificationStore creates a new PostgreSQL implementation of the
// NotificationStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresNotificationStore(db store.DBTX, logger *slog.Logger) *PostgresNotificationStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresNotificationStore{
		db:     db,
		logger: logger.With(slog.String("component", "notification_store")),
	}
}

// Ensure PostgresNotificationStore implements store.NotificationStore.
var _ store.NotificationStore = (*PostgresNotificationStore)(nil)

// ListReadMarkers implements store.NotificationStore.ListReadMarkers.
func (s *PostgresNotificationStore) ListReadMarkers(ctx context.Context) (map[domain.ReadMarker]bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT task_id, notification_type
		FROM notifications
		WHERE is_read = true
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list notification read markers", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	markers := make(map[domain.ReadMarker]bool)
	for rows.Next() {
		var taskID int64
		var notificationType string
		if err := rows.Scan(&taskID, &notificationType); err != nil {
			return nil, err
		}
		markers[domain.ReadMarker{
			TaskID: taskID,
			Type:   domain.NotificationType(notificationType),
		}] = true
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return markers, nil
}

// MarkRead implements store.NotificationStore.MarkRead.
// Upsert keyed on (task_id, notification_type): insert when no row exists,
// otherwise flip is_read on the existing one.
func (s *PostgresNotificationStore) MarkRead(ctx context.Context, taskID int64, notificationType domain.NotificationType) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !notificationType.IsValid() {
		return domain.NewValidationError("notification_type", "is not a known type", domain.ErrValidation)
	}

	query := `
		INSERT INTO notifications (task_id, notification_type, is_read)
		VALUES ($1, $2, true)
		ON CONFLICT (task_id, notification_type)
		DO UPDATE SET is_read = true
	`

	if _, err := s.db.ExecContext(ctx, query, taskID, notificationType); err != nil {
		log.Error("failed to mark notification read",
			slog.String("error", err.Error()),
			slog.Int64("task_id", taskID),
			slog.String("notification_type", string(notificationType)))
		return err
	}

	log.Debug("notification marked read",
		slog.Int64("task_id", taskID),
		slog.String("notification_type", string(notificationType)))
	return nil
}
