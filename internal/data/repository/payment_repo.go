package repository

import (
	"context"
	"fmt"

	"venue-booking/internal/data/entity"
	"venue-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentRepository stores payment obligations (the payment ledger).
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error)

	// CompletePending marks the booking's pending obligations of the given type completed.
	CompletePending(ctx context.Context, bookingID uuid.UUID, paymentType entity.PaymentType) (int64, error)
	// FailPending marks every pending obligation of the booking failed.
	FailPending(ctx context.Context, bookingID uuid.UUID) (int64, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, requester_id, venue_id, amount, payment_type,
		                      payment_method, payment_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.RequesterID,
		payment.VenueID,
		payment.Amount,
		payment.PaymentType,
		payment.PaymentMethod,
		payment.PaymentStatus,
		payment.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("booking_id", payment.BookingID.String()),
			zap.String("payment_type", string(payment.PaymentType)),
		)
		return fmt.Errorf("create %s payment for booking %s: %w", payment.PaymentType, payment.BookingID.String(), err)
	}

	return nil
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error) {
	query := `
		SELECT id, booking_id, requester_id, venue_id, amount, payment_type, payment_method,
		       payment_status, created_at
		FROM payments
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find payments by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payments by booking ID %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		var payment entity.Payment
		err := rows.Scan(
			&payment.ID,
			&payment.BookingID,
			&payment.RequesterID,
			&payment.VenueID,
			&payment.Amount,
			&payment.PaymentType,
			&payment.PaymentMethod,
			&payment.PaymentStatus,
			&payment.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan payment row", zap.Error(err))
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, &payment)
	}

	return payments, rows.Err()
}

func (r *paymentRepository) CompletePending(ctx context.Context, bookingID uuid.UUID, paymentType entity.PaymentType) (int64, error) {
	query := `
		UPDATE payments
		SET payment_status = $3
		WHERE booking_id = $1 AND payment_type = $2 AND payment_status = $4
	`

	result, err := r.db.Exec(ctx, query, bookingID, paymentType, entity.PaymentStatusCompleted, entity.PaymentStatusPending)
	if err != nil {
		r.log.Error("Failed to complete pending payments",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("payment_type", string(paymentType)),
		)
		return 0, fmt.Errorf("complete %s payments for booking %s: %w", paymentType, bookingID.String(), err)
	}

	return result.RowsAffected(), nil
}

func (r *paymentRepository) FailPending(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	query := `
		UPDATE payments
		SET payment_status = $2
		WHERE booking_id = $1 AND payment_status = $3
	`

	result, err := r.db.Exec(ctx, query, bookingID, entity.PaymentStatusFailed, entity.PaymentStatusPending)
	if err != nil {
		r.log.Error("Failed to void pending payments",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return 0, fmt.Errorf("fail pending payments for booking %s: %w", bookingID.String(), err)
	}

	return result.RowsAffected(), nil
}
