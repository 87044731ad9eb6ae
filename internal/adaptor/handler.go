package adaptor

import (
	"errors"
	"net/http"

	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	Venue        *VenueHandler
	Booking      *BookingHandler
	Notification *NotificationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		Venue:        NewVenueHandler(service.Venue, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Notification: NewNotificationHandler(service.Notification, log),
	}
}

// handleServiceError maps usecase errors to HTTP responses
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	var (
		validationErr   *usecase.ValidationError
		conflictErr     *usecase.BookingConflictError
		preconditionErr *usecase.PreconditionFailedError
	)

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.As(err, &conflictErr):
		log.Info(operation+" rejected - time range unavailable", zap.Error(err))
		utils.ResponseConflict(w, conflictErr.Error(), nil)

	case errors.As(err, &preconditionErr):
		log.Info(operation+" rejected - booking state changed", zap.Error(err))
		utils.ResponseConflict(w, preconditionErr.Error(), map[string]any{
			"expected": preconditionErr.Allowed,
			"actual":   preconditionErr.Actual,
		})

	case errors.Is(err, usecase.ErrUnauthenticated), errors.Is(err, usecase.ErrInvalidCredentials):
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" forbidden", zap.Error(err))
		utils.ResponseForbidden(w, "You are not allowed to perform this action")

	case errors.Is(err, usecase.ErrNotFound):
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrEmailTaken):
		utils.ResponseConflict(w, err.Error(), nil)

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// uuidParam reads a chi URL parameter as a UUID, writing 400 on failure.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

func actor(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}
