package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"taskdesk/internal/api/shared"
	"taskdesk/internal/domain"
	"taskdesk/internal/service/notification"
)

// NotificationHandler handles notification API requests.
type NotificationHandler struct {
	notifications notification.Service
	validator     *validator.Validate
}

// NewNotificationHandler creates a new NotificationHandler with the given
// dependencies.
func NewNotificationHandler(notifications notification.Service) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		validator:     validator.New(),
	}
}

// List handles GET /api/notifications. An empty feed is an empty array, not
// null.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := getEmployeeFromContext(w, r)
	if !ok {
		return
	}

	items, err := h.notifications.ListForViewer(r.Context(), caller)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list notifications")
		return
	}

	if items == nil {
		items = []domain.Notification{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// MarkRead handles POST /api/notifications/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	caller, ok := getEmployeeFromContext(w, r)
	if !ok {
		return
	}

	var req MarkNotificationReadRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	err := h.notifications.MarkRead(r.Context(), caller, req.TaskID, domain.NotificationType(req.Type))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
