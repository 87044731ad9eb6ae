package usecase

import (
	"context"
	"fmt"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentLedger records payment obligations raised by lifecycle transitions.
type PaymentLedger interface {
	RecordPaymentObligation(ctx context.Context, bookingID, requesterID, venueID uuid.UUID, amount float64, paymentType entity.PaymentType) (*entity.Payment, error)
	CompletePending(ctx context.Context, bookingID uuid.UUID, paymentType entity.PaymentType) (int64, error)
	// VoidPending fails the obligations of an approval that was reset or declined.
	VoidPending(ctx context.Context, bookingID uuid.UUID) (int64, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error)
}

type paymentLedger struct {
	repo repository.PaymentRepository
	log  *zap.Logger
}

func NewPaymentLedger(repo repository.PaymentRepository, log *zap.Logger) PaymentLedger {
	return &paymentLedger{
		repo: repo,
		log:  log.With(zap.String("service", "payment_ledger")),
	}
}

func (l *paymentLedger) RecordPaymentObligation(ctx context.Context, bookingID, requesterID, venueID uuid.UUID, amount float64, paymentType entity.PaymentType) (*entity.Payment, error) {
	payment := &entity.Payment{
		Record: entity.NewRecord(time.Now()),
		BookingID:     bookingID,
		RequesterID:   requesterID,
		VenueID:       venueID,
		Amount:        amount,
		PaymentType:   paymentType,
		PaymentMethod: entity.PaymentMethodPending,
		PaymentStatus: entity.PaymentStatusPending,
	}

	if err := l.repo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("record %s obligation: %w", paymentType, err)
	}

	l.log.Info("Payment obligation recorded",
		zap.String("booking_id", bookingID.String()),
		zap.String("payment_type", string(paymentType)),
		zap.Float64("amount", amount),
	)

	return payment, nil
}

func (l *paymentLedger) CompletePending(ctx context.Context, bookingID uuid.UUID, paymentType entity.PaymentType) (int64, error) {
	return l.repo.CompletePending(ctx, bookingID, paymentType)
}

func (l *paymentLedger) VoidPending(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	n, err := l.repo.FailPending(ctx, bookingID)
	if err != nil {
		return 0, fmt.Errorf("void pending obligations: %w", err)
	}
	if n > 0 {
		l.log.Info("Pending obligations voided",
			zap.String("booking_id", bookingID.String()),
			zap.Int64("count", n),
		)
	}
	return n, nil
}

func (l *paymentLedger) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error) {
	return l.repo.FindByBookingID(ctx, bookingID)
}
