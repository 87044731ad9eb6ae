package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// BookingRepository is the availability store. Overlap checking is done by
// the database exclusion constraint, never in Go.
type BookingRepository interface {
	Insert(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByRequesterID(ctx context.Context, requesterID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByRequesterID(ctx context.Context, requesterID uuid.UUID) (int64, error)
	FindByVenueID(ctx context.Context, venueID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByVenueID(ctx context.Context, venueID uuid.UUID) (int64, error)

	// UpdateStatus moves the booking to status only if it is still in expected.
	UpdateStatus(ctx context.Context, id uuid.UUID, status, expected entity.BookingStatus, updatedAt time.Time) (*entity.Booking, error)
	// Delete removes a booking only if it is cancelled.
	Delete(ctx context.Context, id uuid.UUID) error
}

const bookingColumns = `id, venue_id, requester_id, start_at, end_at, status, contact_name, contact_email,
		contact_phone, service_label, message, created_at, updated_at`

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Insert(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, venue_id, requester_id, start_at, end_at, status, contact_name,
		                      contact_email, contact_phone, service_label, message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.VenueID,
		booking.RequesterID,
		booking.StartAt,
		booking.EndAt,
		booking.Status,
		booking.ContactName,
		booking.ContactEmail,
		booking.ContactPhone,
		booking.ServiceLabel,
		booking.Message,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
		r.log.Info("Booking rejected by overlap constraint",
			zap.String("venue_id", booking.VenueID.String()),
			zap.Time("start_at", booking.StartAt),
			zap.Time("end_at", booking.EndAt),
		)
		return ErrBookingOverlap
	}
	if err != nil {
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("venue_id", booking.VenueID.String()),
			zap.String("requester_id", booking.RequesterID.String()),
		)
		return fmt.Errorf("insert booking for venue %s: %w", booking.VenueID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByRequesterID(ctx context.Context, requesterID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE requester_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	bookings, err := r.queryBookings(ctx, query, requesterID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by requester",
			zap.Error(err),
			zap.String("requester_id", requesterID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by requester %s: %w", requesterID.String(), err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByRequesterID(ctx context.Context, requesterID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE requester_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, requesterID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by requester",
			zap.Error(err),
			zap.String("requester_id", requesterID.String()),
		)
		return 0, fmt.Errorf("count bookings by requester %s: %w", requesterID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindByVenueID(ctx context.Context, venueID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE venue_id = $1
		ORDER BY start_at
		LIMIT $2 OFFSET $3
	`

	bookings, err := r.queryBookings(ctx, query, venueID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by venue",
			zap.Error(err),
			zap.String("venue_id", venueID.String()),
		)
		return nil, fmt.Errorf("find bookings by venue %s: %w", venueID.String(), err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByVenueID(ctx context.Context, venueID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE venue_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, venueID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by venue",
			zap.Error(err),
			zap.String("venue_id", venueID.String()),
		)
		return 0, fmt.Errorf("count bookings by venue %s: %w", venueID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status, expected entity.BookingStatus, updatedAt time.Time) (*entity.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = $4
		WHERE id = $1 AND status = $3
		RETURNING ` + bookingColumns

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id, status, expected, updatedAt))
	if errors.Is(err, pgx.ErrNoRows) {
		r.log.Warn("Conditional status update matched no row",
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
			zap.String("expected", string(expected)),
		)
		return nil, ErrStatusMismatch
	}
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("update booking %s status to %s: %w", id.String(), string(status), err)
	}

	return booking, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1 AND status = $2`

	result, err := r.db.Exec(ctx, query, id, entity.BookingStatusCancelled)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotCancelled
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.VenueID,
		&booking.RequesterID,
		&booking.StartAt,
		&booking.EndAt,
		&booking.Status,
		&booking.ContactName,
		&booking.ContactEmail,
		&booking.ContactPhone,
		&booking.ServiceLabel,
		&booking.Message,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
