package tasklife

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"taskdesk/internal/domain"
	"taskdesk/internal/platform/logger"
	"taskdesk/internal/store"
)

// rejectCommentPrefix is appended (after a blank line) to the task
// description when a reviewer rejects completed work. The exact string is
// load-bearing: clients and existing data expect it.
const rejectCommentPrefix = "Комментарий администратора: "

// taskNumberAttempts bounds regeneration when a random task number collides
// with an existing one.
const taskNumberAttempts = 5

// Verify interface compliance at compile time.
var _ Service = (*lifecycleService)(nil)

// lifecycleService implements the Service interface.
type lifecycleService struct {
	db        *sql.DB
	tasks     store.TaskStore
	employees store.EmployeeStore
	logger    *slog.Logger
	timeFunc  func() time.Time // Injectable for testing
	runTx     func(context.Context, *sql.DB, store.TxFn) error
}

// NewService creates a new lifecycle Service implementation.
// db is needed for the reject path, which commits two writes in one
// transaction; it may be nil in tests that never reject.
func NewService(
	db *sql.DB,
	tasks store.TaskStore,
	employees store.EmployeeStore,
	log *slog.Logger,
) Service {
	if tasks == nil {
		panic("tasks store cannot be nil")
	}
	if employees == nil {
		panic("employees store cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &lifecycleService{
		db:        db,
		tasks:     tasks,
		employees: employees,
		logger:    log.With(slog.String("component", "tasklife_service")),
		timeFunc:  time.Now,
		runTx:     store.RunInTransaction,
	}
}

// CreateTask implements Service.CreateTask.
func (s *lifecycleService) CreateTask(ctx context.Context, caller *domain.Employee, input CreateTaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !caller.Role.CanManageTasks() {
		log.Warn("task creation denied",
			slog.Int64("caller_id", caller.ID),
			slog.String("role", string(caller.Role)))
		return nil, ErrPermissionDenied
	}

	now := s.timeFunc()
	if domain.DateOnly(input.Deadline).Before(domain.DateOnly(now)) {
		return nil, domain.ErrDeadlineInPast
	}

	assignee, err := s.employees.GetByID(ctx, input.AssignedTo)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrInvalidAssignee
		}
		return nil, fmt.Errorf("failed to load assignee: %w", err)
	}
	if !assignee.IsActive {
		return nil, ErrInvalidAssignee
	}

	task, err := domain.NewTask(
		input.Title,
		input.Description,
		input.Category,
		input.AssignedTo,
		caller.ID,
		input.Deadline,
	)
	if err != nil {
		return nil, err
	}

	// The number is random; on the rare collision, draw again.
	for attempt := 0; ; attempt++ {
		err = s.tasks.Create(ctx, task)
		if err == nil {
			break
		}
		if errors.Is(err, store.ErrTaskNumberExists) && attempt < taskNumberAttempts-1 {
			task.TaskNumber = domain.NewTaskNumber()
			continue
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.String("task_number", task.TaskNumber),
		slog.Int64("created_by", caller.ID),
		slog.Int64("assigned_to", task.AssignedTo))
	return task, nil
}

// Accept implements Service.Accept.
func (s *lifecycleService) Accept(ctx context.Context, caller *domain.Employee, taskID int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.AssignedTo != caller.ID {
		log.Warn("accept denied: caller is not the assignee",
			slog.Int64("task_id", taskID),
			slog.Int64("caller_id", caller.ID),
			slog.Int64("assigned_to", task.AssignedTo))
		return nil, ErrPermissionDenied
	}

	if task.EffectiveStatus(s.timeFunc()) != domain.StatusNotAccepted {
		return nil, fmt.Errorf("%w: cannot accept a task in status %q", ErrInvalidTransition, task.Status)
	}

	return s.transition(ctx, task, domain.StatusInProgress)
}

// Complete implements Service.Complete.
func (s *lifecycleService) Complete(ctx context.Context, caller *domain.Employee, taskID int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.AssignedTo != caller.ID {
		log.Warn("complete denied: caller is not the assignee",
			slog.Int64("task_id", taskID),
			slog.Int64("caller_id", caller.ID))
		return nil, ErrPermissionDenied
	}

	eff := task.EffectiveStatus(s.timeFunc())
	if eff != domain.StatusInProgress && eff != domain.StatusOverdue {
		return nil, fmt.Errorf("%w: cannot complete a task in status %q", ErrInvalidTransition, eff)
	}

	return s.transition(ctx, task, domain.StatusCompleted)
}

// Approve implements Service.Approve.
func (s *lifecycleService) Approve(ctx context.Context, caller *domain.Employee, taskID int64) (*domain.Task, error) {
	task, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeReview(ctx, caller, task, "approve"); err != nil {
		return nil, err
	}

	if task.Status != domain.StatusCompleted {
		return nil, fmt.Errorf("%w: cannot approve a task in status %q", ErrInvalidTransition, task.Status)
	}

	return s.transition(ctx, task, domain.StatusAccepted)
}

// Reject implements Service.Reject.
// The comment append and the status change are one transaction: either both
// land or neither does.
func (s *lifecycleService) Reject(ctx context.Context, caller *domain.Employee, taskID int64, comment string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, ErrCommentRequired
	}

	task, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeReview(ctx, caller, task, "reject"); err != nil {
		return nil, err
	}

	if task.Status != domain.StatusCompleted {
		return nil, fmt.Errorf("%w: cannot reject a task in status %q", ErrInvalidTransition, task.Status)
	}

	newDescription := task.Description + "\n\n" + rejectCommentPrefix + comment

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		if err := txTasks.UpdateDescription(ctx, task.ID, newDescription, task.Version); err != nil {
			return err
		}
		// The description write bumped the version by one.
		return txTasks.UpdateStatus(ctx, task.ID, domain.StatusNotAccepted, task.Version+1)
	})
	if err != nil {
		if errors.Is(err, store.ErrVersionConflict) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to reject task: %w", err)
	}

	log.Info("task rejected",
		slog.Int64("task_id", task.ID),
		slog.Int64("reviewer_id", caller.ID))

	return s.Get(ctx, taskID)
}

// SweepDue implements Service.SweepDue.
func (s *lifecycleService) SweepDue(ctx context.Context, now time.Time) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	due, err := s.tasks.ListDue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to list due tasks: %w", err)
	}

	updated := 0
	for i := range due {
		task := &due[i]

		target := task.EffectiveStatus(now)
		if target == task.Status {
			continue
		}

		err := s.tasks.UpdateStatus(ctx, task.ID, target, task.Version)
		switch {
		case err == nil:
			updated++
		case errors.Is(err, store.ErrVersionConflict), store.IsNotFoundError(err):
			// A concurrent sweep or an operator got there first; both
			// writers converge on the same state, so losing is fine.
			log.Debug("sweep skipped task",
				slog.Int64("task_id", task.ID),
				slog.String("error", err.Error()))
		default:
			log.Error("sweep failed to update task",
				slog.Int64("task_id", task.ID),
				slog.String("error", err.Error()))
			return updated, fmt.Errorf("failed to sweep task %d: %w", task.ID, err)
		}
	}

	if updated > 0 {
		log.Info("deadline sweep finished",
			slog.Int("updated", updated),
			slog.Int("scanned", len(due)))
	}
	return updated, nil
}

// Get implements Service.Get.
func (s *lifecycleService) Get(ctx context.Context, taskID int64) (*domain.Task, error) {
	task, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	s.project(task)
	return task, nil
}

// ListAll implements Service.ListAll.
func (s *lifecycleService) ListAll(ctx context.Context) ([]domain.Task, error) {
	return s.list(s.tasks.ListAll)(ctx)
}

// ListMine implements Service.ListMine.
func (s *lifecycleService) ListMine(ctx context.Context, caller *domain.Employee) ([]domain.Task, error) {
	tasks, err := s.tasks.ListByAssignee(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	s.projectAll(tasks)
	return tasks, nil
}

// ListByStatus implements Service.ListByStatus.
func (s *lifecycleService) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Task, error) {
	if !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}
	tasks, err := s.tasks.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	s.projectAll(tasks)
	return tasks, nil
}

// ListByUpdatePeriod implements Service.ListByUpdatePeriod.
func (s *lifecycleService) ListByUpdatePeriod(ctx context.Context, start, end time.Time) ([]domain.Task, error) {
	tasks, err := s.tasks.ListByUpdatePeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}
	s.projectAll(tasks)
	return tasks, nil
}

// ListCompleted implements Service.ListCompleted.
func (s *lifecycleService) ListCompleted(ctx context.Context) ([]domain.Task, error) {
	return s.list(s.tasks.ListCompleted)(ctx)
}

// loadTask fetches a task and maps the store's not-found to the service's.
func (s *lifecycleService) loadTask(ctx context.Context, taskID int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	return task, nil
}

// authorizeReview checks the approve/reject precondition: a managing role
// that also created the task.
func (s *lifecycleService) authorizeReview(ctx context.Context, caller *domain.Employee, task *domain.Task, op string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !caller.Role.CanManageTasks() || task.CreatedBy != caller.ID {
		log.Warn(op+" denied",
			slog.Int64("task_id", task.ID),
			slog.Int64("caller_id", caller.ID),
			slog.String("role", string(caller.Role)),
			slog.Int64("created_by", task.CreatedBy))
		return ErrPermissionDenied
	}
	return nil
}

// transition performs the single-row CAS status write and returns the task
// re-read in its new state.
func (s *lifecycleService) transition(ctx context.Context, task *domain.Task, target domain.Status) (*domain.Task, error) {
	err := s.tasks.UpdateStatus(ctx, task.ID, target, task.Version)
	if err != nil {
		if errors.Is(err, store.ErrVersionConflict) {
			return nil, ErrConflict
		}
		if store.IsNotFoundError(err) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return s.Get(ctx, task.ID)
}

// project replaces the persisted status with the read-time effective status.
func (s *lifecycleService) project(task *domain.Task) {
	task.Status = task.EffectiveStatus(s.timeFunc())
}

func (s *lifecycleService) projectAll(tasks []domain.Task) {
	for i := range tasks {
		s.project(&tasks[i])
	}
}

func (s *lifecycleService) list(fn func(context.Context) ([]domain.Task, error)) func(context.Context) ([]domain.Task, error) {
	return func(ctx context.Context) ([]domain.Task, error) {
		tasks, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		s.projectAll(tasks)
		return tasks, nil
	}
}
