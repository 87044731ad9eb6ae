package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/pkg/utils"

	"github.com/google/uuid"
)

var (
	// ErrUnauthenticated is returned when an operation needs an actor and none was given.
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = repository.ErrNotFound

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// ValidationError carries every failed field in check order.
type ValidationError struct {
	Fields []utils.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

// BookingConflictError means the availability store refused the range.
type BookingConflictError struct {
	VenueID uuid.UUID
	StartAt time.Time
	EndAt   time.Time
}

func (e *BookingConflictError) Error() string {
	return fmt.Sprintf("venue %s is already booked between %s and %s",
		e.VenueID, e.StartAt.Format(time.RFC3339), e.EndAt.Format(time.RFC3339))
}

func (e *BookingConflictError) Unwrap() error {
	return repository.ErrBookingOverlap
}

// PreconditionFailedError is returned when a lifecycle event does not apply
// to the booking's current status. The booking is left untouched.
type PreconditionFailedError struct {
	BookingID uuid.UUID
	Event     Event
	Allowed   []entity.BookingStatus
	Actual    entity.BookingStatus
}

func (e *PreconditionFailedError) Error() string {
	allowed := make([]string, 0, len(e.Allowed))
	for _, s := range e.Allowed {
		allowed = append(allowed, string(s))
	}
	return fmt.Sprintf("cannot %s booking %s: status is %s, expected one of [%s]",
		e.Event, e.BookingID, e.Actual, strings.Join(allowed, ", "))
}
