package taskfile

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdesk/internal/domain"
	"taskdesk/internal/store"
)

// memTaskStore serves a fixed set of tasks; only GetByID is real.
type memTaskStore struct {
	tasks map[int64]*domain.Task
}

var _ store.TaskStore = (*memTaskStore)(nil)

func (m *memTaskStore) Create(context.Context, *domain.Task) error { panic("not used") }
func (m *memTaskStore) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}
func (m *memTaskStore) ListByAssignee(context.Context, int64) ([]domain.Task, error) {
	panic("not used")
}
func (m *memTaskStore) ListByStatus(context.Context, domain.Status) ([]domain.Task, error) {
	panic("not used")
}
func (m *memTaskStore) ListByUpdatePeriod(context.Context, time.Time, time.Time) ([]domain.Task, error) {
	panic("not used")
}
func (m *memTaskStore) ListAll(context.Context) ([]domain.Task, error)       { panic("not used") }
func (m *memTaskStore) ListCompleted(context.Context) ([]domain.Task, error) { panic("not used") }
func (m *memTaskStore) ListDue(context.Context, time.Time) ([]domain.Task, error) {
	panic("not used")
}
func (m *memTaskStore) UpdateStatus(context.Context, int64, domain.Status, int64) error {
	panic("not used")
}
func (m *memTaskStore) UpdateDescription(context.Context, int64, string, int64) error {
	panic("not used")
}
func (m *memTaskStore) WithTx(*sql.Tx) store.TaskStore { return m }

// memTaskFileStore keeps file references in a slice.
type memTaskFileStore struct {
	nextID int64
	files  []domain.TaskFile
}

var _ store.TaskFileStore = (*memTaskFileStore)(nil)

func (m *memTaskFileStore) Record(_ context.Context, file *domain.TaskFile) error {
	m.nextID++
	file.ID = m.nextID
	m.files = append(m.files, *file)
	return nil
}

func (m *memTaskFileStore) LatestForTask(_ context.Context, taskID int64) (*domain.TaskFile, error) {
	var candidates []domain.TaskFile
	for _, f := range m.files {
		if f.TaskID == taskID {
			candidates = append(candidates, f)
		}
	}
	if len(candidates) == 0 {
		return nil, store.ErrTaskFileNotFound
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].UploadedAt.Equal(candidates[j].UploadedAt) {
			return candidates[i].ID > candidates[j].ID
		}
		return candidates[i].UploadedAt.After(candidates[j].UploadedAt)
	})
	cp := candidates[0]
	return &cp, nil
}

func newTestService(t *testing.T) (Service, string) {
	t.Helper()

	dir := t.TempDir()
	tasks := &memTaskStore{tasks: map[int64]*domain.Task{
		1: {ID: 1, TaskNumber: "1234567", Title: "Отчет", AssignedTo: 10, CreatedBy: 20},
	}}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(tasks, &memTaskFileStore{}, dir, log), dir
}

func assignee() *domain.Employee {
	return &domain.Employee{ID: 10, Login: "ivanov", FullName: "Иванов Иван", Role: domain.RoleExecutor, IsActive: true}
}

func stranger() *domain.Employee {
	return &domain.Employee{ID: 99, Login: "sidorov", FullName: "Сидоров Сидор", Role: domain.RoleExecutor, IsActive: true}
}

func TestAttachAndOpen(t *testing.T) {
	t.Parallel()

	svc, dir := newTestService(t)
	ctx := context.Background()

	file, err := svc.Attach(ctx, assignee(), 1, "отчет.pdf", strings.NewReader("содержимое отчета"))
	require.NoError(t, err)

	assert.Equal(t, "отчет.pdf", file.FileName)
	assert.True(t, strings.HasPrefix(file.FilePath, dir))
	assert.True(t, strings.HasSuffix(file.FilePath, ".pdf"))

	rc, err := svc.Open(ctx, file)
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "содержимое отчета", string(content))
}

func TestAttachAuthorization(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.Attach(context.Background(), stranger(), 1, "отчет.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Attach(context.Background(), assignee(), 404, "отчет.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestAttachRejectsEmptyUploads(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.Attach(context.Background(), assignee(), 1, "отчет.pdf", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = svc.Attach(context.Background(), assignee(), 1, "   ", strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrEmptyFileName)
}

func TestAttachStripsClientPath(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	file, err := svc.Attach(context.Background(), assignee(), 1, "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "passwd", file.FileName)
}

func TestLatestAndHasFile(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	has, err := svc.HasFile(ctx, 1)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = svc.Latest(ctx, 1)
	assert.ErrorIs(t, err, ErrFileNotFound)

	first, err := svc.Attach(ctx, assignee(), 1, "v1.pdf", strings.NewReader("первая версия"))
	require.NoError(t, err)
	second, err := svc.Attach(ctx, assignee(), 1, "v2.pdf", strings.NewReader("вторая версия"))
	require.NoError(t, err)

	latest, err := svc.Latest(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	has, err = svc.HasFile(ctx, 1)
	require.NoError(t, err)
	assert.True(t, has)

	// Superseded files stay on disk.
	_, err = os.Stat(first.FilePath)
	assert.NoError(t, err)
}

func TestOpenMissingContent(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	file, err := svc.Attach(ctx, assignee(), 1, "отчет.pdf", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, os.Remove(file.FilePath))

	_, err = svc.Open(ctx, file)
	assert.ErrorIs(t, err, ErrFileNotFound)
}
