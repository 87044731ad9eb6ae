package wire

import (
	"net/http"

	"venue-booking/internal/adaptor"
	"venue-booking/internal/data/entity"
	"venue-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, auth func(http.Handler) http.Handler, log *zap.Logger) {
	// ==================== PROTECTED ROUTES (any role) ====================
	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Post("/api/bookings", bookingHandler.CreateBooking)
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)
		r.Get("/api/bookings/{id}/payments", bookingHandler.GetBookingPayments)
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)
	})

	// ==================== MANAGER ROUTES ====================
	// ownership of the venue is checked by the service
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Use(middleware.RequireRole(log, entity.RoleVenueManager))

		r.Get("/api/manager/venues/{id}/bookings", bookingHandler.GetVenueBookings)
		r.Put("/api/manager/bookings/{id}/approve", bookingHandler.ApproveBooking)
		r.Put("/api/manager/bookings/{id}/decline", bookingHandler.DeclineBooking)
		r.Put("/api/manager/bookings/{id}/reset", bookingHandler.ResetBooking)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(auth)
		r.Use(middleware.RequireRole(log, entity.RoleAdmin))

		r.Put("/{id}/confirm-payment", bookingHandler.ConfirmPayment)
		r.Delete("/{id}", bookingHandler.PurgeBooking)
	})
}
