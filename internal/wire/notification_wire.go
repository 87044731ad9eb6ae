package wire

import (
	"net/http"

	"venue-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireNotification(r chi.Router, notificationHandler *adaptor.NotificationHandler, auth func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Get("/api/user/notifications", notificationHandler.GetUserNotifications)
		r.Put("/api/user/notifications/{id}/read", notificationHandler.MarkRead)
	})
}
