package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"taskdesk/internal/domain"
	"taskdesk/internal/platform/logger"
	"taskdesk/internal/store"
)

// unknownAssigneeName stands in when a submitted task has no resolvable
// assignee name. The exact string is shown to operators.
const unknownAssigneeName = "Неизвестно"

var _ Service = (*deriverService)(nil)

type deriverService struct {
	tasks    store.TaskStore
	markers  store.NotificationStore
	logger   *slog.Logger
	timeFunc func() time.Time // Injectable for testing
}

// NewService creates the notification deriver.
func NewService(tasks store.TaskStore, markers store.NotificationStore, log *slog.Logger) Service {
	if tasks == nil {
		panic("tasks store cannot be nil")
	}
	if markers == nil {
		panic("notification store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &deriverService{
		tasks:    tasks,
		markers:  markers,
		logger:   log.With(slog.String("component", "notification_service")),
		timeFunc: time.Now,
	}
}

// ListForViewer implements Service.ListForViewer.
func (s *deriverService) ListForViewer(ctx context.Context, viewer *domain.Employee) ([]domain.Notification, error) {
	switch viewer.Role {
	case domain.RoleAdmin, domain.RoleDirector:
		return s.deriveCompleted(ctx)
	case domain.RoleExecutor:
		return s.deriveNew(ctx, viewer.ID)
	default:
		// Managers review through the task list, not through notifications.
		return nil, nil
	}
}

// MarkRead implements Service.MarkRead.
func (s *deriverService) MarkRead(ctx context.Context, viewer *domain.Employee, taskID int64, notificationType domain.NotificationType) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !notificationType.IsValid() {
		return ErrInvalidType
	}
	if !canSee(viewer.Role, notificationType) {
		log.Warn("mark read denied",
			slog.Int64("viewer_id", viewer.ID),
			slog.String("role", string(viewer.Role)),
			slog.String("type", string(notificationType)))
		return ErrPermissionDenied
	}

	if err := s.markers.MarkRead(ctx, taskID, notificationType); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	log.Debug("notification marked read",
		slog.Int64("task_id", taskID),
		slog.String("type", string(notificationType)))
	return nil
}

// deriveCompleted builds the reviewer feed: one item per submitted task.
func (s *deriverService) deriveCompleted(ctx context.Context) ([]domain.Notification, error) {
	tasks, err := s.tasks.ListCompleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed tasks: %w", err)
	}

	read, err := s.markers.ListReadMarkers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list read markers: %w", err)
	}

	now := s.timeFunc()
	var out []domain.Notification
	for i := range tasks {
		task := &tasks[i]
		if read[domain.ReadMarker{TaskID: task.ID, Type: domain.NotificationCompletedTask}] {
			continue
		}

		assignee := task.AssigneeName
		if assignee == "" || assignee == domain.UnassignedDisplayName {
			assignee = unknownAssigneeName
		}

		out = append(out, domain.Notification{
			TaskID:     task.ID,
			TaskNumber: task.TaskNumber,
			Type:       domain.NotificationCompletedTask,
			Message:    fmt.Sprintf("Задача %s сдана исполнителем %s", task.TaskNumber, assignee),
			Deadline:   task.DeadlineDate,
			CreatedAt:  now,
		})
	}
	return out, nil
}

// deriveNew builds the executor feed: one item per own unaccepted task.
func (s *deriverService) deriveNew(ctx context.Context, employeeID int64) ([]domain.Notification, error) {
	tasks, err := s.tasks.ListByAssignee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned tasks: %w", err)
	}

	read, err := s.markers.ListReadMarkers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list read markers: %w", err)
	}

	now := s.timeFunc()
	var out []domain.Notification
	for i := range tasks {
		task := &tasks[i]
		if task.Status != domain.StatusNotAccepted {
			continue
		}
		if read[domain.ReadMarker{TaskID: task.ID, Type: domain.NotificationNewTask}] {
			continue
		}

		out = append(out, domain.Notification{
			TaskID:     task.ID,
			TaskNumber: task.TaskNumber,
			Type:       domain.NotificationNewTask,
			Message:    fmt.Sprintf("Новая задача: %s - %s", task.TaskNumber, task.Title),
			Deadline:   task.DeadlineDate,
			CreatedAt:  now,
		})
	}
	return out, nil
}

// canSee maps roles to the notification types their feed contains.
func canSee(role domain.Role, notificationType domain.NotificationType) bool {
	switch notificationType {
	case domain.NotificationCompletedTask:
		return role == domain.RoleAdmin || role == domain.RoleDirector
	case domain.NotificationNewTask:
		return role == domain.RoleExecutor
	default:
		return false
	}
}
