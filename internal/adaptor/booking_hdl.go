package adaptor

import (
	"context"
	"encoding/json"
	"net/http"

	"venue-booking/internal/dto/request"
	"venue-booking/internal/dto/response"
	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type transitionFunc func(ctx context.Context, actorID, bookingID uuid.UUID) (*response.TransitionResponse, error)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := actor(w, r)
	if !ok {
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking submitted", booking)
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := actor(w, r)
	if !ok {
		return
	}
	bookingID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	booking, err := h.service.GetBooking(r.Context(), userID, bookingID)
	if err != nil {
		handleServiceError(h.log, w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetBookingPayments handles GET /api/bookings/{id}/payments
func (h *BookingHandler) GetBookingPayments(w http.ResponseWriter, r *http.Request) {
	userID, ok := actor(w, r)
	if !ok {
		return
	}
	bookingID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	payments, err := h.service.GetBookingPayments(r.Context(), userID, bookingID)
	if err != nil {
		handleServiceError(h.log, w, err, "get booking payments")
		return
	}

	utils.ResponseSuccess(w, "success", payments)
}

// GetUserBookings handles GET /api/user/bookings
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := actor(w, r)
	if !ok {
		return
	}

	bookings, err := h.service.GetUserBookings(r.Context(), userID, paginationFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetVenueBookings handles GET /api/manager/venues/{id}/bookings
func (h *BookingHandler) GetVenueBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := actor(w, r)
	if !ok {
		return
	}
	venueID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	bookings, err := h.service.GetVenueBookings(r.Context(), userID, venueID, paginationFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get venue bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// ==================== LIFECYCLE ====================

// ApproveBooking handles PUT /api/manager/bookings/{id}/approve
func (h *BookingHandler) ApproveBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "approve booking", "Booking approved", h.service.ApproveBooking)
}

// DeclineBooking handles PUT /api/manager/bookings/{id}/decline
func (h *BookingHandler) DeclineBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "decline booking", "Booking declined", h.service.DeclineBooking)
}

// ResetBooking handles PUT /api/manager/bookings/{id}/reset
func (h *BookingHandler) ResetBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "reset booking", "Booking reset to pending", h.service.ResetBooking)
}

// ConfirmPayment handles PUT /api/admin/bookings/{id}/confirm-payment
func (h *BookingHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "confirm payment", "Booking paid", h.service.ConfirmPayment)
}

// PurgeBooking handles DELETE /api/admin/bookings/{id}
func (h *BookingHandler) PurgeBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := actor(w, r)
	if !ok {
		return
	}
	bookingID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.PurgeBooking(r.Context(), userID, bookingID); err != nil {
		handleServiceError(h.log, w, err, "purge booking")
		return
	}

	utils.ResponseSuccess(w, "Booking deleted", nil)
}

func (h *BookingHandler) transition(w http.ResponseWriter, r *http.Request, operation, message string, apply transitionFunc) {
	userID, ok := actor(w, r)
	if !ok {
		return
	}
	bookingID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	result, err := apply(r.Context(), userID, bookingID)
	if err != nil {
		handleServiceError(h.log, w, err, operation)
		return
	}

	utils.ResponseSuccess(w, message, result)
}
