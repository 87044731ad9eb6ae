package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venue-booking/internal/events"
	"venue-booking/internal/usecase"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// PaymentConfirmer is the slice of usecase.BookingService the worker needs.
type PaymentConfirmer interface {
	ConfirmPayment(ctx context.Context, actorID, bookingID uuid.UUID) error
}

// ConfirmerFunc adapts a function to PaymentConfirmer.
type ConfirmerFunc func(ctx context.Context, actorID, bookingID uuid.UUID) error

func (f ConfirmerFunc) ConfirmPayment(ctx context.Context, actorID, bookingID uuid.UUID) error {
	return f(ctx, actorID, bookingID)
}

// FromBookingService drops the transition response the worker has no use for.
func FromBookingService(s usecase.BookingService) PaymentConfirmer {
	return ConfirmerFunc(func(ctx context.Context, actorID, bookingID uuid.UUID) error {
		_, err := s.ConfirmPayment(ctx, actorID, bookingID)
		return err
	})
}

// PaymentConsumer moves bookings to confirmed_paid when the payment
// provider reports a completed payment.
type PaymentConsumer struct {
	confirmer PaymentConfirmer
	log       *zap.Logger
}

func NewPaymentConsumer(confirmer PaymentConfirmer, log *zap.Logger) *PaymentConsumer {
	return &PaymentConsumer{
		confirmer: confirmer,
		log:       log.With(zap.String("worker", "payment")),
	}
}

// Run handles deliveries until ctx is done or the channel closes.
func (c *PaymentConsumer) Run(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	c.log.Info("Payment consumer started")
	for {
		select {
		case <-ctx.Done():
			c.log.Info("Payment consumer stopped")
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.handle(ctx, d)
		}
	}
}

// Subscribe opens a delivery channel and returns a function closing it.
type Subscribe func(ctx context.Context) (<-chan amqp.Delivery, func() error, error)

// RunReconnecting keeps the consumer attached to the broker until ctx is
// done, resubscribing after retry whenever the connection or the delivery
// channel is lost.
func (c *PaymentConsumer) RunReconnecting(ctx context.Context, subscribe Subscribe, retry time.Duration) {
	for {
		deliveries, closeFn, err := subscribe(ctx)
		if err != nil {
			c.log.Error("Failed to subscribe to payment events", zap.Error(err), zap.Duration("retry_in", retry))
		} else {
			err = c.Run(ctx, deliveries)
			if closeFn != nil {
				_ = closeFn()
			}
			if err == nil {
				return
			}
			c.log.Warn("Payment consumer lost broker, resubscribing", zap.Error(err), zap.Duration("retry_in", retry))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(retry):
		}
	}
}

func (c *PaymentConsumer) handle(ctx context.Context, d amqp.Delivery) {
	err := c.process(ctx, d)
	if err == nil || permanent(err) {
		if err != nil {
			c.log.Warn("Dropping payment event",
				zap.Error(err),
				zap.String("routing_key", d.RoutingKey),
			)
		}
		if ackErr := d.Ack(false); ackErr != nil {
			c.log.Error("Failed to ack delivery", zap.Error(ackErr))
		}
		return
	}

	c.log.Error("Payment event failed, requeueing",
		zap.Error(err),
		zap.String("routing_key", d.RoutingKey),
	)
	if nackErr := d.Nack(false, true); nackErr != nil {
		c.log.Error("Failed to nack delivery", zap.Error(nackErr))
	}
}

func (c *PaymentConsumer) process(ctx context.Context, d amqp.Delivery) error {
	if d.RoutingKey != events.RKPaymentCompleted {
		return fmt.Errorf("unexpected routing key %q: %w", d.RoutingKey, errMalformed)
	}

	ev, err := events.Unmarshal[events.PaymentCompleted](d.Body)
	if err != nil {
		return fmt.Errorf("%v: %w", err, errMalformed)
	}

	bookingID, err := uuid.Parse(ev.BookingID)
	if err != nil {
		return fmt.Errorf("booking id %q: %w", ev.BookingID, errMalformed)
	}

	if err := c.confirmer.ConfirmPayment(ctx, uuid.Nil, bookingID); err != nil {
		return err
	}

	c.log.Info("Booking payment confirmed from event",
		zap.String("booking_id", bookingID.String()),
		zap.String("payment_id", ev.PaymentID),
	)
	return nil
}

var errMalformed = errors.New("malformed payment event")

// permanent errors will not succeed on redelivery.
func permanent(err error) bool {
	var precondition *usecase.PreconditionFailedError
	var validation *usecase.ValidationError
	return errors.Is(err, errMalformed) ||
		errors.Is(err, usecase.ErrNotFound) ||
		errors.As(err, &precondition) ||
		errors.As(err, &validation)
}
