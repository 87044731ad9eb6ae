package entity

import (
	"github.com/google/uuid"
)

type PaymentType string

const (
	PaymentTypeDownpayment PaymentType = "downpayment"
	PaymentTypeServiceFee  PaymentType = "service_fee"
	PaymentTypeBalance     PaymentType = "balance"
	PaymentTypeFull        PaymentType = "full"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// PaymentMethodPending is the method recorded until the requester pays.
const PaymentMethodPending = "pending"

// Payment is a payment obligation attached to a booking.
type Payment struct {
	Record
	BookingID     uuid.UUID     `db:"booking_id"`
	RequesterID   uuid.UUID     `db:"requester_id"`
	VenueID       uuid.UUID     `db:"venue_id"`
	Amount        float64       `db:"amount"`
	PaymentType   PaymentType   `db:"payment_type"`
	PaymentMethod string        `db:"payment_method"`
	PaymentStatus PaymentStatus `db:"payment_status"`
}
