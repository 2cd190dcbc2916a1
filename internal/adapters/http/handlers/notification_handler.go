package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/auditforce/internal/adapters/http/dto"
	"github.com/jsamuelsen11/auditforce/internal/ports"
)

// NotificationHandler handles HTTP requests for in-app notifications.
type NotificationHandler struct {
	svc ports.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler with the given service port.
func NewNotificationHandler(svc ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// ListNotifications handles GET /api/v1/users/{id}/notifications.
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToNotificationListResponse(h.svc.ListNotifications(r.Context(), userID)))
}

// MarkRead handles POST /api/v1/notifications/{id}/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.MarkNotificationRead(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarkAllRead handles POST /api/v1/users/{id}/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	n, err := h.svc.MarkAllNotificationsRead(r.Context(), userID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CountResponse{Updated: n})
}
