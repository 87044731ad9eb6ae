package usecase

import "venue-booking/internal/data/entity"

// Event is a lifecycle trigger applied to an existing booking.
type Event string

const (
	EventApprove        Event = "approve"
	EventDecline        Event = "decline"
	EventReset          Event = "reset"
	EventConfirmPayment Event = "confirm_payment"

	// EventPurge deletes a cancelled booking. It is not a status transition.
	EventPurge Event = "purge"
)

var transitions = map[Event]map[entity.BookingStatus]entity.BookingStatus{
	EventApprove: {
		entity.BookingStatusPending: entity.BookingStatusConfirmedForDownpayment,
	},
	EventDecline: {
		entity.BookingStatusPending:                 entity.BookingStatusCancelled,
		entity.BookingStatusConfirmedForDownpayment: entity.BookingStatusCancelled,
	},
	EventReset: {
		entity.BookingStatusPending:                 entity.BookingStatusPending,
		entity.BookingStatusConfirmedForDownpayment: entity.BookingStatusPending,
	},
	EventConfirmPayment: {
		entity.BookingStatusConfirmedForDownpayment: entity.BookingStatusConfirmedPaid,
	},
}

// statusOrder keeps AllowedFrom deterministic.
var statusOrder = []entity.BookingStatus{
	entity.BookingStatusPending,
	entity.BookingStatusConfirmedForDownpayment,
	entity.BookingStatusConfirmedPaid,
	entity.BookingStatusCancelled,
}

// NextStatus returns the status event moves a booking in from to.
func NextStatus(from entity.BookingStatus, event Event) (entity.BookingStatus, bool) {
	to, ok := transitions[event][from]
	return to, ok
}

// AllowedFrom lists the statuses event may be applied to.
func AllowedFrom(event Event) []entity.BookingStatus {
	var out []entity.BookingStatus
	for _, s := range statusOrder {
		if _, ok := transitions[event][s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// CanPurge reports whether a booking in status may be hard-deleted.
func CanPurge(status entity.BookingStatus) bool {
	return status == entity.BookingStatusCancelled
}
