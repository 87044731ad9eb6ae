package usecase

import (
	"context"
	"errors"
	"testing"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestVenueService_CreateAndQuote(t *testing.T) {
	repo := newMemVenueRepo()
	svc := NewVenueService(repo, zap.NewNop())
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.CreateVenue(ctx, owner, &request.CreateVenueRequest{
		Name: "Rooftop",
		Pricing: request.VenuePricingRequest{
			HourlyRate: ptr(200.0),
			DailyRate:  ptr(3000.0),
		},
		Services: []request.VenueServiceRequest{
			{Name: "Decoration", Price: 150, IsRequired: true},
		},
	})
	if err != nil {
		t.Fatalf("CreateVenue: %v", err)
	}
	if created.OwnerID != owner.String() || len(created.Services) != 1 {
		t.Errorf("venue = %+v", created)
	}

	quote, err := svc.Quote(ctx, uuid.MustParse(created.ID), &request.QuoteRequest{
		Start:   "2030-05-01T10:00:00Z",
		End:     "2030-05-01T15:00:00Z",
		Service: "Decoration",
	})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if quote.Basis != string(BasisHourly) || quote.BaseAmount != 1000 || quote.DownpaymentAmount != 300 {
		t.Errorf("quote = %+v", quote)
	}
	if quote.ServiceFeeAmount == nil || *quote.ServiceFeeAmount != 150 {
		t.Errorf("service fee = %v, want 150", quote.ServiceFeeAmount)
	}
}

func TestVenueService_QuoteRejectsBadRange(t *testing.T) {
	repo := newMemVenueRepo()
	svc := NewVenueService(repo, zap.NewNop())

	_, err := svc.Quote(context.Background(), uuid.New(), &request.QuoteRequest{
		Start: "2030-05-01T10:00:00Z",
		End:   "2030-05-01T10:00:00Z",
	})

	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Fields[0].Field != "end" {
		t.Errorf("err = %v, want validation failure on end", err)
	}
}

func TestVenueService_UpdatePricingOwnerOnly(t *testing.T) {
	repo := newMemVenueRepo()
	owner := uuid.New()
	venue := &entity.Venue{Base: entity.Base{ID: uuid.New()}, OwnerID: owner, Name: "Hall"}
	_ = repo.Create(context.Background(), venue)

	svc := NewVenueService(repo, zap.NewNop())
	req := &request.VenuePricingRequest{DailyRate: ptr(900.0)}

	if _, err := svc.UpdatePricing(context.Background(), uuid.New(), venue.ID, req); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger: err = %v, want ErrForbidden", err)
	}

	updated, err := svc.UpdatePricing(context.Background(), owner, venue.ID, req)
	if err != nil {
		t.Fatalf("owner: %v", err)
	}
	if updated.DailyRate == nil || *updated.DailyRate != 900 {
		t.Errorf("daily rate = %v", updated.DailyRate)
	}

	if _, err := svc.UpdatePricing(context.Background(), owner, venue.ID, &request.VenuePricingRequest{PriceUnit: ptr("week")}); err == nil {
		t.Error("expected validation failure for unknown price unit")
	}
}
