package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Routing keys on the events exchange.
const (
	RKPaymentCompleted = "payment.completed"

	// notification keys are RKNotificationPrefix + notification type
	RKNotificationPrefix = "notification."
)

// PaymentCompleted is published by the payment provider integration once a
// booking's downpayment has been settled.
type PaymentCompleted struct {
	BookingID string `json:"booking_id"`
	PaymentID string `json:"payment_id,omitempty"`
}

// NotificationEmitted mirrors an inbox notification onto the broker.
type NotificationEmitted struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipient_id"`
	SenderID    string    `json:"sender_id,omitempty"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"created_at"`
}

func Unmarshal[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload failed: %w", err)
	}
	return t, nil
}
