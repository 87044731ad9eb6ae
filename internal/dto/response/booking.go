package response

import (
	"time"

	"venue-booking/internal/data/entity"
)

type BookingResponse struct {
	ID           string               `json:"id"`
	VenueID      string               `json:"venue_id"`
	RequesterID  string               `json:"requester_id"`
	StartAt      time.Time            `json:"start_at"`
	EndAt        time.Time            `json:"end_at"`
	Status       entity.BookingStatus `json:"status"`
	ContactName  string               `json:"contact_name"`
	ContactEmail string               `json:"contact_email"`
	ContactPhone string               `json:"contact_phone"`
	Service      string               `json:"service"`
	Message      *string              `json:"message,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

type PaymentResponse struct {
	ID            string               `json:"id"`
	BookingID     string               `json:"booking_id"`
	Amount        float64              `json:"amount"`
	PaymentType   entity.PaymentType   `json:"payment_type"`
	PaymentMethod string               `json:"payment_method"`
	PaymentStatus entity.PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time            `json:"created_at"`
}

// TransitionResponse is returned by every lifecycle operation. Payments
// and Quote are only set by transitions that create obligations.
type TransitionResponse struct {
	Booking  BookingResponse   `json:"booking"`
	Payments []PaymentResponse `json:"payments,omitempty"`
	Quote    *QuoteResponse    `json:"quote,omitempty"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID.String(),
		VenueID:      b.VenueID.String(),
		RequesterID:  b.RequesterID.String(),
		StartAt:      b.StartAt,
		EndAt:        b.EndAt,
		Status:       b.Status,
		ContactName:  b.ContactName,
		ContactEmail: b.ContactEmail,
		ContactPhone: b.ContactPhone,
		Service:      b.ServiceLabel,
		Message:      b.Message,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func PaymentToResponse(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID.String(),
		BookingID:     p.BookingID.String(),
		Amount:        p.Amount,
		PaymentType:   p.PaymentType,
		PaymentMethod: p.PaymentMethod,
		PaymentStatus: p.PaymentStatus,
		CreatedAt:     p.CreatedAt,
	}
}

func PaymentsToResponse(payments []*entity.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, PaymentToResponse(p))
	}
	return out
}
