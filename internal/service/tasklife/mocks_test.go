package tasklife

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"taskdesk/internal/domain"
	"taskdesk/internal/store"
)

// fakeTaskStore is an in-memory store.TaskStore for service tests.
type fakeTaskStore struct {
	mu      sync.Mutex
	nextID  int64
	tasks   map[int64]*domain.Task
	numbers map[string]bool

	// failNumberOnce makes the next Create fail with ErrTaskNumberExists,
	// to exercise the regeneration loop.
	failNumberOnce bool
}

var _ store.TaskStore = (*fakeTaskStore)(nil)

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{
		tasks:   make(map[int64]*domain.Task),
		numbers: make(map[string]bool),
	}
}

func (f *fakeTaskStore) Create(ctx context.Context, task *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failNumberOnce {
		f.failNumberOnce = false
		return store.ErrTaskNumberExists
	}
	if f.numbers[task.TaskNumber] {
		return store.ErrTaskNumberExists
	}

	f.nextID++
	now := time.Now().UTC()
	task.ID = f.nextID
	task.Status = domain.StatusNotAccepted
	task.CreatedAt = now
	task.UpdatedAt = now
	task.Version = 1

	f.numbers[task.TaskNumber] = true
	cp := *task
	f.tasks[task.ID] = &cp
	return nil
}

func (f *fakeTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	task, ok := f.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	cp := *task
	return &cp, nil
}

func (f *fakeTaskStore) ListByAssignee(ctx context.Context, employeeID int64) ([]domain.Task, error) {
	return f.filter(func(t *domain.Task) bool { return t.AssignedTo == employeeID }), nil
}

func (f *fakeTaskStore) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Task, error) {
	return f.filter(func(t *domain.Task) bool { return t.Status == status }), nil
}

func (f *fakeTaskStore) ListByUpdatePeriod(ctx context.Context, start, end time.Time) ([]domain.Task, error) {
	return f.filter(func(t *domain.Task) bool {
		return !t.UpdatedAt.Before(start) && !t.UpdatedAt.After(end)
	}), nil
}

func (f *fakeTaskStore) ListAll(ctx context.Context) ([]domain.Task, error) {
	return f.filter(func(*domain.Task) bool { return true }), nil
}

func (f *fakeTaskStore) ListCompleted(ctx context.Context) ([]domain.Task, error) {
	return f.ListByStatus(ctx, domain.StatusCompleted)
}

func (f *fakeTaskStore) ListDue(ctx context.Context, date time.Time) ([]domain.Task, error) {
	day := domain.DateOnly(date)
	return f.filter(func(t *domain.Task) bool {
		if t.Status != domain.StatusNotAccepted && t.Status != domain.StatusInProgress {
			return false
		}
		return !domain.DateOnly(t.DeadlineDate).After(day)
	}), nil
}

func (f *fakeTaskStore) UpdateStatus(ctx context.Context, id int64, status domain.Status, expectedVersion int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	task, ok := f.tasks[id]
	if !ok {
		return store.ErrTaskNotFound
	}
	if task.Version != expectedVersion {
		return store.ErrVersionConflict
	}

	task.Status = status
	task.UpdatedAt = time.Now().UTC()
	task.Version++
	return nil
}

func (f *fakeTaskStore) UpdateDescription(ctx context.Context, id int64, description string, expectedVersion int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	task, ok := f.tasks[id]
	if !ok {
		return store.ErrTaskNotFound
	}
	if task.Version != expectedVersion {
		return store.ErrVersionConflict
	}

	task.Description = description
	task.Version++
	return nil
}

func (f *fakeTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return f
}

func (f *fakeTaskStore) filter(keep func(*domain.Task) bool) []domain.Task {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.Task
	for _, t := range f.tasks {
		if keep(t) {
			out = append(out, *t)
		}
	}
	return out
}

// seed inserts a task directly, bypassing the forced initial status.
func (f *fakeTaskStore) seed(task domain.Task) domain.Task {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	task.ID = f.nextID
	if task.Version == 0 {
		task.Version = 1
	}
	cp := task
	f.tasks[task.ID] = &cp
	return task
}

// get reads the persisted row, not a projection.
func (f *fakeTaskStore) get(id int64) domain.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.tasks[id]
}

// fakeEmployeeStore is an in-memory store.EmployeeStore for service tests.
type fakeEmployeeStore struct {
	mu        sync.Mutex
	nextID    int64
	employees map[int64]*domain.Employee
}

var _ store.EmployeeStore = (*fakeEmployeeStore)(nil)

func newFakeEmployeeStore() *fakeEmployeeStore {
	return &fakeEmployeeStore{employees: make(map[int64]*domain.Employee)}
}

func (f *fakeEmployeeStore) Create(ctx context.Context, employee *domain.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.employees {
		if e.Login == employee.Login {
			return store.ErrLoginExists
		}
	}

	f.nextID++
	employee.ID = f.nextID
	employee.CreatedAt = time.Now().UTC()
	cp := *employee
	f.employees[employee.ID] = &cp
	return nil
}

func (f *fakeEmployeeStore) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.employees[id]
	if !ok {
		return nil, store.ErrEmployeeNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEmployeeStore) GetByLogin(ctx context.Context, login string) (*domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.employees {
		if e.Login == login && e.IsActive {
			cp := *e
			return &cp, nil
		}
	}
	return nil, store.ErrEmployeeNotFound
}

func (f *fakeEmployeeStore) ListActive(ctx context.Context) ([]domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.Employee
	for _, e := range f.employees {
		if e.IsActive {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeStore) Deactivate(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.employees[id]
	if !ok {
		return store.ErrEmployeeNotFound
	}
	e.IsActive = false
	return nil
}

// seed inserts an employee directly.
func (f *fakeEmployeeStore) seed(employee domain.Employee) domain.Employee {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	employee.ID = f.nextID
	cp := employee
	f.employees[employee.ID] = &cp
	return employee
}
