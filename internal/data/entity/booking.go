package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending                 BookingStatus = "pending"
	BookingStatusConfirmedForDownpayment BookingStatus = "confirmed_for_downpayment"
	BookingStatusConfirmedPaid           BookingStatus = "confirmed_paid"
	BookingStatusCancelled               BookingStatus = "cancelled"
)

// IsTerminal reports whether no status transition leaves s.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusConfirmedPaid || s == BookingStatusCancelled
}

// Booking is a requester's claim on a venue for [StartAt, EndAt).
type Booking struct {
	Base
	VenueID      uuid.UUID     `db:"venue_id"`
	RequesterID  uuid.UUID     `db:"requester_id"`
	StartAt      time.Time     `db:"start_at"`
	EndAt        time.Time     `db:"end_at"`
	Status       BookingStatus `db:"status"`
	ContactName  string        `db:"contact_name"`
	ContactEmail string        `db:"contact_email"`
	ContactPhone string        `db:"contact_phone"`
	ServiceLabel string        `db:"service_label"`
	Message      *string       `db:"message"`
}
