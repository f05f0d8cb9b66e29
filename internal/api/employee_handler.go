package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"taskdesk/internal/api/shared"
	"taskdesk/internal/domain"
	"taskdesk/internal/service/staff"
)

// EmployeeHandler handles employee account API requests.
type EmployeeHandler struct {
	staff     staff.Service
	validator *validator.Validate
}

// NewEmployeeHandler creates a new EmployeeHandler with the given dependencies.
func NewEmployeeHandler(staffService staff.Service) *EmployeeHandler {
	return &EmployeeHandler{
		staff:     staffService,
		validator: validator.New(),
	}
}

// List handles GET /api/employees.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.staff.ListActive(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list employees")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newEmployeeListResponse(employees))
}

// Create handles POST /api/employees.
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := getEmployeeFromContext(w, r)
	if !ok {
		return
	}

	var req CreateEmployeeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	created, err := h.staff.Register(r.Context(), caller, staff.RegisterInput{
		Login:    req.Login,
		Password: req.Password,
		FullName: req.FullName,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newEmployeeResponse(created))
}

// Delete handles DELETE /api/employees/{id}. The employee row survives as
// inactive; tasks keep referring to it.
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := getEmployeeFromContext(w, r)
	if !ok {
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.staff.Deactivate(r.Context(), caller, id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
