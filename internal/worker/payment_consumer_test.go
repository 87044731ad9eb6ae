package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/usecase"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type fakeAck struct {
	acked   int
	nacked  int
	requeue bool
}

func (f *fakeAck) Ack(uint64, bool) error { f.acked++; return nil }

func (f *fakeAck) Nack(_ uint64, _ bool, requeue bool) error {
	f.nacked++
	f.requeue = requeue
	return nil
}

func (f *fakeAck) Reject(uint64, bool) error { return nil }

func delivery(ack *fakeAck, key, body string) amqp.Delivery {
	return amqp.Delivery{Acknowledger: ack, RoutingKey: key, Body: []byte(body)}
}

func TestPaymentConsumer_Handle(t *testing.T) {
	bookingID := uuid.New()
	valid := `{"booking_id":"` + bookingID.String() + `","payment_id":"pay_1"}`

	tests := []struct {
		name       string
		key        string
		body       string
		confirmErr error
		wantCalls  int
		wantAck    bool
	}{
		{name: "confirmed", key: "payment.completed", body: valid, wantCalls: 1, wantAck: true},
		{name: "wrong routing key", key: "payment.failed", body: valid, wantAck: true},
		{name: "bad json", key: "payment.completed", body: `{`, wantAck: true},
		{name: "bad booking id", key: "payment.completed", body: `{"booking_id":"nope"}`, wantAck: true},
		{
			name:       "already paid",
			key:        "payment.completed",
			body:       valid,
			confirmErr: &usecase.PreconditionFailedError{BookingID: bookingID, Actual: entity.BookingStatusConfirmedPaid},
			wantCalls:  1,
			wantAck:    true,
		},
		{name: "unknown booking", key: "payment.completed", body: valid, confirmErr: usecase.ErrNotFound, wantCalls: 1, wantAck: true},
		{name: "transient failure", key: "payment.completed", body: valid, confirmErr: errors.New("db down"), wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int
			var gotActor, gotBooking uuid.UUID
			confirmer := ConfirmerFunc(func(_ context.Context, actorID, id uuid.UUID) error {
				calls++
				gotActor, gotBooking = actorID, id
				return tt.confirmErr
			})
			ack := &fakeAck{}

			NewPaymentConsumer(confirmer, zap.NewNop()).handle(context.Background(), delivery(ack, tt.key, tt.body))

			if calls != tt.wantCalls {
				t.Errorf("confirm calls = %d, want %d", calls, tt.wantCalls)
			}
			if calls > 0 && (gotActor != uuid.Nil || gotBooking != bookingID) {
				t.Errorf("confirm(%s, %s), want system actor and %s", gotActor, gotBooking, bookingID)
			}
			if tt.wantAck {
				if ack.acked != 1 || ack.nacked != 0 {
					t.Errorf("acked=%d nacked=%d, want ack", ack.acked, ack.nacked)
				}
			} else if ack.nacked != 1 || !ack.requeue || ack.acked != 0 {
				t.Errorf("acked=%d nacked=%d requeue=%v, want nack with requeue", ack.acked, ack.nacked, ack.requeue)
			}
		})
	}
}

func TestPaymentConsumer_RunStopsOnClosedChannel(t *testing.T) {
	deliveries := make(chan amqp.Delivery)
	close(deliveries)

	c := NewPaymentConsumer(ConfirmerFunc(func(context.Context, uuid.UUID, uuid.UUID) error { return nil }), zap.NewNop())
	if err := c.Run(context.Background(), deliveries); err == nil {
		t.Error("Run returned nil on closed channel")
	}
}

func TestPaymentConsumer_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	deliveries := make(chan amqp.Delivery, 1)
	handled := make(chan uuid.UUID, 1)
	done := make(chan error, 1)

	c := NewPaymentConsumer(ConfirmerFunc(func(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
		handled <- id
		return nil
	}), zap.NewNop())
	go func() { done <- c.Run(ctx, deliveries) }()

	id := uuid.New()
	deliveries <- delivery(&fakeAck{}, "payment.completed", `{"booking_id":"`+id.String()+`"}`)

	select {
	case got := <-handled:
		if got != id {
			t.Errorf("confirmed %s, want %s", got, id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("delivery not handled")
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v, want nil after cancel", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestPaymentConsumer_RunReconnectingSurvivesBrokerLoss(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	id := uuid.New()
	live := make(chan amqp.Delivery, 1)
	live <- delivery(&fakeAck{}, "payment.completed", `{"booking_id":"`+id.String()+`"}`)

	var attempts, closes int
	subscribe := func(context.Context) (<-chan amqp.Delivery, func() error, error) {
		attempts++
		switch attempts {
		case 1:
			return nil, nil, errors.New("connection refused")
		case 2:
			lost := make(chan amqp.Delivery)
			close(lost)
			return lost, func() error { closes++; return nil }, nil
		default:
			return live, func() error { closes++; return nil }, nil
		}
	}

	handled := make(chan uuid.UUID, 1)
	c := NewPaymentConsumer(ConfirmerFunc(func(_ context.Context, _ uuid.UUID, bookingID uuid.UUID) error {
		handled <- bookingID
		return nil
	}), zap.NewNop())

	done := make(chan struct{})
	go func() {
		c.RunReconnecting(ctx, subscribe, time.Millisecond)
		close(done)
	}()

	select {
	case got := <-handled:
		if got != id {
			t.Errorf("confirmed %s, want %s", got, id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not resubscribe")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RunReconnecting did not return after cancel")
	}
	if attempts != 3 {
		t.Errorf("subscribe attempts = %d, want 3", attempts)
	}
	if closes != 2 {
		t.Errorf("closed subscriptions = %d, want 2", closes)
	}
}
