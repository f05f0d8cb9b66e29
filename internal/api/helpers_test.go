package api

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"taskdesk/internal/api/shared"
	"taskdesk/internal/domain"
	"taskdesk/internal/service/notification"
	"taskdesk/internal/service/staff"
	"taskdesk/internal/service/taskfile"
	"taskdesk/internal/service/tasklife"
)

// withEmployee injects an authenticated employee the way the auth middleware
// would.
func withEmployee(e *domain.Employee) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), shared.EmployeeContextKey, e)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func testManager() *domain.Employee {
	return &domain.Employee{ID: 1, Login: "petrov", FullName: "Петров Петр", Role: domain.RoleManager, IsActive: true}
}

func testExecutor() *domain.Employee {
	return &domain.Employee{ID: 2, Login: "ivanov", FullName: "Иванов Иван", Role: domain.RoleExecutor, IsActive: true}
}

func testTask() *domain.Task {
	return &domain.Task{
		ID:           7,
		TaskNumber:   "1234567",
		Title:        "Подготовить отчет",
		Description:  "Квартальный отчет",
		Category:     "Отчет",
		Status:       domain.StatusNotAccepted,
		AssignedTo:   2,
		AssigneeName: "Иванов Иван",
		CreatedBy:    1,
		CreatorName:  "Петров Петр",
		DeadlineDate: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
		Version:      1,
	}
}

// fakeTaskService returns canned values and records the last call.
type fakeTaskService struct {
	task  *domain.Task
	tasks []domain.Task
	err   error

	lastComment string
	lastInput   tasklife.CreateTaskInput
}

var _ tasklife.Service = (*fakeTaskService)(nil)

func (f *fakeTaskService) CreateTask(_ context.Context, _ *domain.Employee, input tasklife.CreateTaskInput) (*domain.Task, error) {
	f.lastInput = input
	return f.task, f.err
}

func (f *fakeTaskService) Accept(context.Context, *domain.Employee, int64) (*domain.Task, error) {
	return f.task, f.err
}

func (f *fakeTaskService) Complete(context.Context, *domain.Employee, int64) (*domain.Task, error) {
	return f.task, f.err
}

func (f *fakeTaskService) Approve(context.Context, *domain.Employee, int64) (*domain.Task, error) {
	return f.task, f.err
}

func (f *fakeTaskService) Reject(_ context.Context, _ *domain.Employee, _ int64, comment string) (*domain.Task, error) {
	f.lastComment = comment
	return f.task, f.err
}

func (f *fakeTaskService) SweepDue(context.Context, time.Time) (int, error) { return 0, f.err }

func (f *fakeTaskService) Get(context.Context, int64) (*domain.Task, error) {
	return f.task, f.err
}

func (f *fakeTaskService) ListAll(context.Context) ([]domain.Task, error) { return f.tasks, f.err }
func (f *fakeTaskService) ListMine(context.Context, *domain.Employee) ([]domain.Task, error) {
	return f.tasks, f.err
}
func (f *fakeTaskService) ListByStatus(context.Context, domain.Status) ([]domain.Task, error) {
	return f.tasks, f.err
}
func (f *fakeTaskService) ListByUpdatePeriod(context.Context, time.Time, time.Time) ([]domain.Task, error) {
	return f.tasks, f.err
}
func (f *fakeTaskService) ListCompleted(context.Context) ([]domain.Task, error) {
	return f.tasks, f.err
}

// fakeFileService returns canned values.
type fakeFileService struct {
	file    *domain.TaskFile
	content string
	hasFile bool
	err     error
}

var _ taskfile.Service = (*fakeFileService)(nil)

func (f *fakeFileService) Attach(_ context.Context, _ *domain.Employee, _ int64, _ string, _ io.Reader) (*domain.TaskFile, error) {
	return f.file, f.err
}

func (f *fakeFileService) Latest(context.Context, int64) (*domain.TaskFile, error) {
	if f.file == nil && f.err == nil {
		return nil, taskfile.ErrFileNotFound
	}
	return f.file, f.err
}

func (f *fakeFileService) Open(context.Context, *domain.TaskFile) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.content)), nil
}

func (f *fakeFileService) HasFile(context.Context, int64) (bool, error) {
	return f.hasFile, f.err
}

// fakeStaffService returns canned values.
type fakeStaffService struct {
	employee *domain.Employee
	token    string
	err      error
}

var _ staff.Service = (*fakeStaffService)(nil)

func (f *fakeStaffService) Authenticate(context.Context, string, string) (*domain.Employee, string, error) {
	return f.employee, f.token, f.err
}

func (f *fakeStaffService) Register(context.Context, *domain.Employee, staff.RegisterInput) (*domain.Employee, error) {
	return f.employee, f.err
}

func (f *fakeStaffService) ListActive(context.Context) ([]domain.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.employee == nil {
		return nil, nil
	}
	return []domain.Employee{*f.employee}, nil
}

func (f *fakeStaffService) Deactivate(context.Context, *domain.Employee, int64) error {
	return f.err
}

// fakeNotificationService returns canned values and records MarkRead calls.
type fakeNotificationService struct {
	items  []domain.Notification
	err    error
	marked []domain.ReadMarker
}

var _ notification.Service = (*fakeNotificationService)(nil)

func (f *fakeNotificationService) ListForViewer(context.Context, *domain.Employee) ([]domain.Notification, error) {
	return f.items, f.err
}

func (f *fakeNotificationService) MarkRead(_ context.Context, _ *domain.Employee, taskID int64, notificationType domain.NotificationType) error {
	if f.err != nil {
		return f.err
	}
	f.marked = append(f.marked, domain.ReadMarker{TaskID: taskID, Type: notificationType})
	return nil
}

// newTaskRouter mounts the task routes behind an injected employee.
func newTaskRouter(h *TaskHandler, e *domain.Employee) http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(withEmployee(e))
		r.Get("/api/tasks", h.List)
		r.Post("/api/tasks", h.Create)
		r.Get("/api/tasks/mine", h.Mine)
		r.Get("/api/tasks/completed", h.Completed)
		r.Get("/api/tasks/{id}", h.Get)
		r.Post("/api/tasks/{id}/accept", h.Accept)
		r.Post("/api/tasks/{id}/complete", h.Complete)
		r.Post("/api/tasks/{id}/approve", h.Approve)
		r.Post("/api/tasks/{id}/reject", h.Reject)
	})
	return r
}
