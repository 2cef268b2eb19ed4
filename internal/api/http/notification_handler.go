package http

import (
	"net/http"

	"dhara-backend/internal/service"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := caller(r.Context())
	notes, err := h.notificationService.ListNotifications(r.Context(), userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, notes)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := caller(r.Context())
	if err := h.notificationService.MarkAsRead(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "notification marked as read"})
}
