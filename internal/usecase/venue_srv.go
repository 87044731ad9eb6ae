package usecase

import (
	"context"
	"fmt"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/dto/request"
	"venue-booking/internal/dto/response"
	"venue-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VenueService interface {
	GetVenue(ctx context.Context, venueID uuid.UUID) (*response.VenueResponse, error)
	Quote(ctx context.Context, venueID uuid.UUID, req *request.QuoteRequest) (*response.QuoteResponse, error)

	// Manager endpoints
	CreateVenue(ctx context.Context, actorID uuid.UUID, req *request.CreateVenueRequest) (*response.VenueResponse, error)
	UpdatePricing(ctx context.Context, actorID, venueID uuid.UUID, req *request.VenuePricingRequest) (*response.VenueResponse, error)
}

type venueService struct {
	repo repository.VenueRepository
	log  *zap.Logger
}

func NewVenueService(repo repository.VenueRepository, log *zap.Logger) VenueService {
	return &venueService{
		repo: repo,
		log:  log.With(zap.String("service", "venue")),
	}
}

func (s *venueService) GetVenue(ctx context.Context, venueID uuid.UUID) (*response.VenueResponse, error) {
	venue, err := s.find(ctx, venueID)
	if err != nil {
		return nil, err
	}

	resp := response.VenueToResponse(venue)
	return &resp, nil
}

// Quote prices [start, end) for the venue without creating anything.
func (s *venueService) Quote(ctx context.Context, venueID uuid.UUID, req *request.QuoteRequest) (*response.QuoteResponse, error) {
	if fields := utils.ValidateFields(req); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	var fields []utils.FieldError
	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		fields = append(fields, utils.FieldError{Field: "start", Message: "Must be an RFC3339 timestamp"})
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		fields = append(fields, utils.FieldError{Field: "end", Message: "Must be an RFC3339 timestamp"})
	}
	if len(fields) == 0 && !end.After(start) {
		fields = append(fields, utils.FieldError{Field: "end", Message: "End must be after start"})
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	venue, err := s.find(ctx, venueID)
	if err != nil {
		return nil, err
	}

	quote := ComputeDownpayment(venue.VenuePricing, start, end, req.Service, venue.Services)
	if quote.Degraded {
		s.log.Warn("Quote for venue without usable price", zap.String("venue_id", venueID.String()))
	}

	return quoteToResponse(quote), nil
}

func (s *venueService) CreateVenue(ctx context.Context, actorID uuid.UUID, req *request.CreateVenueRequest) (*response.VenueResponse, error) {
	if actorID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if fields := utils.ValidateFields(req); len(fields) > 0 {
		s.log.Warn("Create venue validation failed", zap.Any("errors", fields))
		return nil, &ValidationError{Fields: fields}
	}

	now := time.Now()
	venue := &entity.Venue{
		Base: entity.NewBase(now),
		VenuePricing: pricingFromRequest(&req.Pricing),
		OwnerID:      actorID,
		Name:         req.Name,
	}
	for _, svc := range req.Services {
		venue.Services = append(venue.Services, &entity.VenueService{
			Record: entity.NewRecord(now),
			VenueID:    venue.ID,
			Name:       svc.Name,
			Price:      svc.Price,
			IsRequired: svc.IsRequired,
		})
	}

	if err := s.repo.Create(ctx, venue); err != nil {
		return nil, fmt.Errorf("create venue: %w", err)
	}

	s.log.Info("Venue created",
		zap.String("venue_id", venue.ID.String()),
		zap.String("owner_id", actorID.String()),
	)

	resp := response.VenueToResponse(venue)
	return &resp, nil
}

func (s *venueService) UpdatePricing(ctx context.Context, actorID, venueID uuid.UUID, req *request.VenuePricingRequest) (*response.VenueResponse, error) {
	if actorID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if fields := utils.ValidateFields(req); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	venue, err := s.find(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if venue.OwnerID != actorID {
		return nil, ErrForbidden
	}

	venue.VenuePricing = pricingFromRequest(req)
	venue.UpdatedAt = time.Now()

	if err := s.repo.UpdatePricing(ctx, venue); err != nil {
		return nil, fmt.Errorf("update venue pricing: %w", err)
	}

	s.log.Info("Venue pricing updated", zap.String("venue_id", venueID.String()))

	resp := response.VenueToResponse(venue)
	return &resp, nil
}

func (s *venueService) find(ctx context.Context, venueID uuid.UUID) (*entity.Venue, error) {
	venue, err := s.repo.FindByID(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("find venue %s: %w", venueID, err)
	}
	if venue == nil {
		return nil, fmt.Errorf("venue %s: %w", venueID, ErrNotFound)
	}
	return venue, nil
}

func pricingFromRequest(req *request.VenuePricingRequest) entity.VenuePricing {
	return entity.VenuePricing{
		Price:                 req.Price,
		HourlyRate:            req.HourlyRate,
		DailyRate:             req.DailyRate,
		BasePrice:             req.BasePrice,
		PriceUnit:             req.PriceUnit,
		DownpaymentPercentage: req.DownpaymentPercentage,
	}
}
