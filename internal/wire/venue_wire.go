package wire

import (
	"net/http"

	"venue-booking/internal/adaptor"
	"venue-booking/internal/data/entity"
	"venue-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireVenue(r chi.Router, venueHandler *adaptor.VenueHandler, auth func(http.Handler) http.Handler, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/venues/{id}", venueHandler.GetVenue)
	r.Get("/api/venues/{id}/quote", venueHandler.Quote)

	// ==================== MANAGER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Use(middleware.RequireRole(log, entity.RoleVenueManager))

		r.Post("/api/manager/venues", venueHandler.CreateVenue)
		r.Put("/api/manager/venues/{id}/pricing", venueHandler.UpdatePricing)
	})
}
