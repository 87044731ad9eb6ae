package entity

import "github.com/google/uuid"

type NotificationType string

const (
	NotificationBookingApproved NotificationType = "booking_approved"
	NotificationBookingDeclined NotificationType = "booking_declined"
	NotificationBookingReset    NotificationType = "booking_reset"
	NotificationBookingPaid     NotificationType = "booking_paid"
)

type Notification struct {
	Record
	RecipientID uuid.UUID        `db:"recipient_id"`
	SenderID    *uuid.UUID       `db:"sender_id"` // nil for system events
	Type        NotificationType `db:"type"`
	Message     string           `db:"message"`
	Link        string           `db:"link"`
	IsRead      bool             `db:"is_read"`
}
