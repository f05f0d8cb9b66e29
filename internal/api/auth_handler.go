package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"taskdesk/internal/api/shared"
	"taskdesk/internal/service/staff"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	staff     staff.Service
	validator *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(staffService staff.Service) *AuthHandler {
	return &AuthHandler{
		staff:     staffService,
		validator: validator.New(),
	}
}

// Login handles the /api/auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	employee, token, err := h.staff.Authenticate(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, staff.ErrInvalidCredentials) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid login or password")
			return
		}
		HandleAPIError(w, r, err, "Failed to authenticate")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Token:    token,
		Employee: newEmployeeResponse(employee),
	})
}
