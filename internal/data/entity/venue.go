package entity

import "github.com/google/uuid"

const (
	PriceUnitHour = "hour"
	PriceUnitDay  = "day"
)

// VenuePricing holds every price source a venue may configure. Nil or
// non-positive values count as not configured.
type VenuePricing struct {
	Price                 *string  `db:"price"` // free text, legacy listings
	HourlyRate            *float64 `db:"hourly_rate"`
	DailyRate             *float64 `db:"daily_rate"`
	BasePrice             *float64 `db:"base_price"`
	PriceUnit             *string  `db:"price_unit"`
	DownpaymentPercentage *float64 `db:"downpayment_percentage"`
}

type Venue struct {
	Base
	VenuePricing
	OwnerID  uuid.UUID `db:"owner_id"`
	Name     string    `db:"name"`
	Services []*VenueService
}

type VenueService struct {
	Record
	VenueID    uuid.UUID `db:"venue_id"`
	Name       string    `db:"name"`
	Price      float64   `db:"price"`
	IsRequired bool      `db:"is_required"`
}
