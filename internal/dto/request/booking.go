package request

// CreateBookingRequest is the booking form as submitted. Dates are
// YYYY-MM-DD and times HH:MM in the booking time zone. Field order is the
// order validation failures are reported in.
type CreateBookingRequest struct {
	Name      string  `json:"name" validate:"required"`
	Email     string  `json:"email" validate:"required"`
	Phone     string  `json:"phone" validate:"required"`
	Service   string  `json:"service" validate:"required"`
	StartDate string  `json:"start_date" validate:"required"`
	EndDate   string  `json:"end_date" validate:"required"`
	StartTime string  `json:"start_time" validate:"required"`
	EndTime   string  `json:"end_time" validate:"required"`
	Message   *string `json:"message,omitempty"`
	VenueID   string  `json:"venue_id" validate:"required,uuid"`
}
