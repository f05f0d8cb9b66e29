package api

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"

	"taskdesk/internal/api/shared"
	"taskdesk/internal/domain"
	"taskdesk/internal/service/taskfile"
	"taskdesk/internal/service/tasklife"
)

// TaskHandler handles task lifecycle API requests.
type TaskHandler struct {
	tasks     tasklife.Service
	files     taskfile.Service
	validator *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(tasks tasklife.Service, files taskfile.Service) *TaskHandler {
	return &TaskHandler{
		tasks:     tasks,
		files:     files,
		validator: validator.New(),
	}
}

// List handles GET /api/tasks with optional status and update-period filters.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if status := r.URL.Query().Get("status"); status != "" {
		tasks, err := h.tasks.ListByStatus(ctx, domain.Status(status))
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, newTaskListResponse(tasks))
		return
	}

	from, to, set, ok := parsePeriodQuery(w, r)
	if !ok {
		return
	}
	if set {
		tasks, err := h.tasks.ListByUpdatePeriod(ctx, from, to)
		if err != nil {
			HandleAPIError(w, r, err, "Failed to list tasks")
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, newTaskListResponse(tasks))
		return
	}

	tasks, err := h.tasks.ListAll(ctx)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newTaskListResponse(tasks))
}

// Mine handles GET /api/tasks/mine.
func (h *TaskHandler) Mine(w http.ResponseWriter, r *http.Request) {
	caller, ok := getEmployeeFromContext(w, r)
	if !ok {
		return
	}

	tasks, err := h.tasks.ListMine(r.Context(), caller)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newTaskListResponse(tasks))
}

// Completed handles GET /api/tasks/completed.
func (h *TaskHandler) Completed(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListCompleted(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newTaskListResponse(tasks))
}

// Get handles GET /api/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newTaskResponse(task))
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := getEmployeeFromContext(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), caller, tasklife.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		AssignedTo:  req.AssignedTo,
		Deadline:    deadline,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newTaskResponse(task))
}

// Accept handles POST /api/tasks/{id}/accept.
func (h *TaskHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.tasks.Accept)
}

// Approve handles POST /api/tasks/{id}/approve.
func (h *TaskHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.tasks.Approve)
}

// Complete handles POST /api/tasks/{id}/complete. The response flags a
// submission without an uploaded report so the client can warn first.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	caller, ok := getEmployeeFromContext(w, r)
	if !ok {
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	hasFile, err := h.files.HasFile(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to check for uploaded files")
		return
	}

	task, err := h.tasks.Complete(r.Context(), caller, id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CompleteTaskResponse{
		Task:        newTaskResponse(task),
		MissingFile: !hasFile,
	})
}

// Reject handles POST /api/tasks/{id}/reject.
func (h *TaskHandler) Reject(w http.ResponseWriter, r *http.Request) {
	caller, ok := getEmployeeFromContext(w, r)
	if !ok {
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req RejectTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := h.tasks.Reject(r.Context(), caller, id, req.Comment)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newTaskResponse(task))
}

type transitionFunc func(ctx context.Context, caller *domain.Employee, taskID int64) (*domain.Task, error)

func (h *TaskHandler) transition(w http.ResponseWriter, r *http.Request, fn transitionFunc) {
	caller, ok := getEmployeeFromContext(w, r)
	if !ok {
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := fn(r.Context(), caller, id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newTaskResponse(task))
}
