package response

import (
	"time"

	"venue-booking/internal/data/entity"
)

type VenueServiceResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	IsRequired bool    `json:"is_required"`
}

type VenueResponse struct {
	ID                    string                 `json:"id"`
	OwnerID               string                 `json:"owner_id"`
	Name                  string                 `json:"name"`
	Price                 *string                `json:"price,omitempty"`
	HourlyRate            *float64               `json:"hourly_rate,omitempty"`
	DailyRate             *float64               `json:"daily_rate,omitempty"`
	BasePrice             *float64               `json:"base_price,omitempty"`
	PriceUnit             *string                `json:"price_unit,omitempty"`
	DownpaymentPercentage *float64               `json:"downpayment_percentage,omitempty"`
	Services              []VenueServiceResponse `json:"services"`
	CreatedAt             time.Time              `json:"created_at"`
	UpdatedAt             time.Time              `json:"updated_at"`
}

type QuoteResponse struct {
	Basis             string   `json:"basis"`
	BaseAmount        float64  `json:"base_amount"`
	DownpaymentAmount float64  `json:"downpayment_amount"`
	ServiceFeeAmount  *float64 `json:"service_fee_amount,omitempty"`
	Degraded          bool     `json:"degraded,omitempty"`
}

func VenueToResponse(v *entity.Venue) VenueResponse {
	services := make([]VenueServiceResponse, 0, len(v.Services))
	for _, svc := range v.Services {
		services = append(services, VenueServiceResponse{
			ID:         svc.ID.String(),
			Name:       svc.Name,
			Price:      svc.Price,
			IsRequired: svc.IsRequired,
		})
	}

	return VenueResponse{
		ID:                    v.ID.String(),
		OwnerID:               v.OwnerID.String(),
		Name:                  v.Name,
		Price:                 v.Price,
		HourlyRate:            v.HourlyRate,
		DailyRate:             v.DailyRate,
		BasePrice:             v.BasePrice,
		PriceUnit:             v.PriceUnit,
		DownpaymentPercentage: v.DownpaymentPercentage,
		Services:              services,
		CreatedAt:             v.CreatedAt,
		UpdatedAt:             v.UpdatedAt,
	}
}
