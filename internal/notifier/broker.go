package notifier

import (
	"context"
	"fmt"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/events"
)

// Publisher is satisfied by *mq.Publisher.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// BrokerNotifier publishes notifications on the events exchange under
// notification.<type>.
type BrokerNotifier struct {
	pub Publisher
}

func NewBrokerNotifier(pub Publisher) *BrokerNotifier {
	return &BrokerNotifier{pub: pub}
}

func (b *BrokerNotifier) Notify(ctx context.Context, n *entity.Notification) error {
	msg := events.NotificationEmitted{
		ID:          n.ID.String(),
		RecipientID: n.RecipientID.String(),
		Type:        string(n.Type),
		Message:     n.Message,
		Link:        n.Link,
		CreatedAt:   n.CreatedAt,
	}
	if n.SenderID != nil {
		msg.SenderID = n.SenderID.String()
	}

	key := events.RKNotificationPrefix + string(n.Type)
	if err := b.pub.PublishJSON(ctx, key, msg); err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}
	return nil
}
