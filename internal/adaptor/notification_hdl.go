package adaptor

import (
	"net/http"

	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

type NotificationHandler struct {
	service usecase.NotificationService
	log     *zap.Logger
}

func NewNotificationHandler(service usecase.NotificationService, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		log:     log.With(zap.String("handler", "notification")),
	}
}

// GetUserNotifications handles GET /api/user/notifications
func (h *NotificationHandler) GetUserNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := actor(w, r)
	if !ok {
		return
	}

	notifications, err := h.service.GetUserNotifications(r.Context(), userID, paginationFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get notifications")
		return
	}

	utils.ResponseSuccess(w, "success", notifications)
}

// MarkRead handles PUT /api/user/notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := actor(w, r)
	if !ok {
		return
	}
	notificationID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.MarkRead(r.Context(), userID, notificationID); err != nil {
		handleServiceError(h.log, w, err, "mark notification read")
		return
	}

	utils.ResponseSuccess(w, "Notification marked as read", nil)
}
