package notifier

import (
	"context"
	"errors"

	"venue-booking/internal/data/entity"
)

// Notifier delivers a user-facing notification. Callers in the booking
// lifecycle treat delivery as best effort.
type Notifier interface {
	Notify(ctx context.Context, n *entity.Notification) error
}

// Multi fans a notification out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n *entity.Notification) error {
	var errs []error
	for _, nt := range m {
		if err := nt.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
