package repository

import (
	"context"
	"errors"
	"fmt"

	"venue-booking/internal/data/entity"
	"venue-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VenueRepository interface {
	// Create stores the venue and its services in one transaction
	Create(ctx context.Context, venue *entity.Venue) error
	// FindByID loads the venue with its services
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error)
	UpdatePricing(ctx context.Context, venue *entity.Venue) error
}

type venueRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVenueRepository(db database.PgxIface, log *zap.Logger) VenueRepository {
	return &venueRepository{
		db:  db,
		log: log.With(zap.String("repository", "venue")),
	}
}

func (r *venueRepository) Create(ctx context.Context, venue *entity.Venue) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin venue transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO venues (id, owner_id, name, price, hourly_rate, daily_rate, base_price, price_unit,
		                    downpayment_percentage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		venue.ID,
		venue.OwnerID,
		venue.Name,
		venue.Price,
		venue.HourlyRate,
		venue.DailyRate,
		venue.BasePrice,
		venue.PriceUnit,
		venue.DownpaymentPercentage,
		venue.CreatedAt,
		venue.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create venue",
			zap.Error(err),
			zap.String("name", venue.Name),
			zap.String("owner_id", venue.OwnerID.String()),
		)
		return fmt.Errorf("create venue %s: %w", venue.Name, err)
	}

	for _, svc := range venue.Services {
		_, err := tx.Exec(ctx, `
			INSERT INTO venue_services (id, venue_id, name, price, is_required, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, svc.ID, venue.ID, svc.Name, svc.Price, svc.IsRequired, svc.CreatedAt)
		if err != nil {
			r.log.Error("Failed to create venue service",
				zap.Error(err),
				zap.String("venue_id", venue.ID.String()),
				zap.String("service", svc.Name),
			)
			return fmt.Errorf("create service %s for venue %s: %w", svc.Name, venue.ID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit venue %s: %w", venue.ID.String(), err)
	}

	return nil
}

func (r *venueRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error) {
	query := `
		SELECT id, owner_id, name, price, hourly_rate, daily_rate, base_price, price_unit,
		       downpayment_percentage, created_at, updated_at
		FROM venues
		WHERE id = $1
	`

	var venue entity.Venue
	err := r.db.QueryRow(ctx, query, id).Scan(
		&venue.ID,
		&venue.OwnerID,
		&venue.Name,
		&venue.Price,
		&venue.HourlyRate,
		&venue.DailyRate,
		&venue.BasePrice,
		&venue.PriceUnit,
		&venue.DownpaymentPercentage,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find venue by ID",
			zap.Error(err),
			zap.String("venue_id", id.String()),
		)
		return nil, fmt.Errorf("find venue by ID %s: %w", id.String(), err)
	}

	services, err := r.findServices(ctx, id)
	if err != nil {
		r.log.Error("Failed to load venue services",
			zap.Error(err),
			zap.String("venue_id", id.String()),
		)
		return nil, fmt.Errorf("find services for venue %s: %w", id.String(), err)
	}
	venue.Services = services

	return &venue, nil
}

func (r *venueRepository) UpdatePricing(ctx context.Context, venue *entity.Venue) error {
	query := `
		UPDATE venues
		SET price = $2, hourly_rate = $3, daily_rate = $4, base_price = $5, price_unit = $6,
		    downpayment_percentage = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		venue.ID,
		venue.Price,
		venue.HourlyRate,
		venue.DailyRate,
		venue.BasePrice,
		venue.PriceUnit,
		venue.DownpaymentPercentage,
		venue.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update venue pricing",
			zap.Error(err),
			zap.String("venue_id", venue.ID.String()),
		)
		return fmt.Errorf("update pricing for venue %s: %w", venue.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("venue %s: %w", venue.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *venueRepository) findServices(ctx context.Context, venueID uuid.UUID) ([]*entity.VenueService, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, venue_id, name, price, is_required, created_at
		FROM venue_services
		WHERE venue_id = $1
		ORDER BY created_at
	`, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*entity.VenueService
	for rows.Next() {
		var svc entity.VenueService
		if err := rows.Scan(&svc.ID, &svc.VenueID, &svc.Name, &svc.Price, &svc.IsRequired, &svc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan venue service row: %w", err)
		}
		services = append(services, &svc)
	}

	return services, rows.Err()
}
