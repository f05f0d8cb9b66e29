package api

import (
	"time"

	"taskdesk/internal/domain"
)

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Login    string `json:"login"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the access token and the authenticated employee.
type LoginResponse struct {
	Token    string           `json:"token"`
	Employee EmployeeResponse `json:"employee"`
}

// CreateEmployeeRequest represents the employee registration payload.
type CreateEmployeeRequest struct {
	Login    string `json:"login"     validate:"required,min=3,max=64"`
	Password string `json:"password"  validate:"required,min=6,max=72"`
	FullName string `json:"full_name" validate:"required,max=255"`
	Role     string `json:"role"      validate:"required,oneof=executor manager admin director"`
}

// EmployeeResponse is the employee representation returned by the API.
// Password material never appears here.
type EmployeeResponse struct {
	ID          int64     `json:"id"`
	Login       string    `json:"login"`
	FullName    string    `json:"full_name"`
	Role        string    `json:"role"`
	RoleDisplay string    `json:"role_display"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateTaskRequest represents the task creation payload. The deadline is a
// date string, "2006-01-02" or RFC 3339.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required,max=255"`
	Description string `json:"description" validate:"max=4000"`
	Category    string `json:"category"    validate:"required"`
	AssignedTo  int64  `json:"assigned_to" validate:"required,gt=0"`
	Deadline    string `json:"deadline"    validate:"required"`
}

// RejectTaskRequest carries the mandatory reviewer comment.
type RejectTaskRequest struct {
	Comment string `json:"comment" validate:"required"`
}

// TaskResponse is the task representation returned by the API. Status carries
// the read-time effective status.
type TaskResponse struct {
	ID            int64     `json:"id"`
	TaskNumber    string    `json:"task_number"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Status        string    `json:"status"`
	StatusDisplay string    `json:"status_display"`
	AssignedTo    int64     `json:"assigned_to"`
	AssigneeName  string    `json:"assignee_name"`
	CreatedBy     int64     `json:"created_by"`
	CreatorName   string    `json:"creator_name,omitempty"`
	DeadlineDate  time.Time `json:"deadline_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Version       int64     `json:"version"`
}

// CompleteTaskResponse wraps the completed task with a warning flag the
// client can use to confirm a submission without an uploaded report.
type CompleteTaskResponse struct {
	Task        TaskResponse `json:"task"`
	MissingFile bool         `json:"missing_file"`
}

// MarkNotificationReadRequest identifies the notification to dismiss.
type MarkNotificationReadRequest struct {
	TaskID int64  `json:"task_id" validate:"required,gt=0"`
	Type   string `json:"type"    validate:"required,oneof=completed_task new_task"`
}

// TaskFileResponse is the file reference representation returned by the API.
// The storage path stays server-side.
type TaskFileResponse struct {
	ID         int64     `json:"id"`
	TaskID     int64     `json:"task_id"`
	FileName   string    `json:"file_name"`
	UploadedBy int64     `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func newEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		Login:       e.Login,
		FullName:    e.FullName,
		Role:        string(e.Role),
		RoleDisplay: e.Role.DisplayName(),
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
	}
}

func newEmployeeListResponse(employees []domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, newEmployeeResponse(&employees[i]))
	}
	return out
}

func newTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:            t.ID,
		TaskNumber:    t.TaskNumber,
		Title:         t.Title,
		Description:   t.Description,
		Category:      t.Category,
		Status:        string(t.Status),
		StatusDisplay: t.Status.DisplayName(),
		AssignedTo:    t.AssignedTo,
		AssigneeName:  t.AssigneeName,
		CreatedBy:     t.CreatedBy,
		CreatorName:   t.CreatorName,
		DeadlineDate:  t.DeadlineDate,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		Version:       t.Version,
	}
}

func newTaskListResponse(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, newTaskResponse(&tasks[i]))
	}
	return out
}

func newTaskFileResponse(f *domain.TaskFile) TaskFileResponse {
	return TaskFileResponse{
		ID:         f.ID,
		TaskID:     f.TaskID,
		FileName:   f.FileName,
		UploadedBy: f.UploadedBy,
		UploadedAt: f.UploadedAt,
	}
}
