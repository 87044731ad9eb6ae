package request

type VenuePricingRequest struct {
	Price                 *string  `json:"price,omitempty" validate:"omitempty,max=100"`
	HourlyRate            *float64 `json:"hourly_rate,omitempty" validate:"omitempty,gte=0"`
	DailyRate             *float64 `json:"daily_rate,omitempty" validate:"omitempty,gte=0"`
	BasePrice             *float64 `json:"base_price,omitempty" validate:"omitempty,gte=0"`
	PriceUnit             *string  `json:"price_unit,omitempty" validate:"omitempty,oneof=hour day"`
	DownpaymentPercentage *float64 `json:"downpayment_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
}

type VenueServiceRequest struct {
	Name       string  `json:"name" validate:"required,max=100"`
	Price      float64 `json:"price" validate:"gte=0"`
	IsRequired bool    `json:"is_required"`
}

type CreateVenueRequest struct {
	Name     string                `json:"name" validate:"required,min=2,max=200"`
	Pricing  VenuePricingRequest   `json:"pricing"`
	Services []VenueServiceRequest `json:"services" validate:"dive"`
}

type QuoteRequest struct {
	Start   string `json:"start" validate:"required"`
	End     string `json:"end" validate:"required"`
	Service string `json:"service"`
}
