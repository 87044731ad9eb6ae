package notifier

import (
	"context"
	"fmt"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"

	"go.uber.org/zap"
)

// StoreNotifier writes notifications to the recipient's inbox.
type StoreNotifier struct {
	repo repository.NotificationRepository
	log  *zap.Logger
}

func NewStoreNotifier(repo repository.NotificationRepository, log *zap.Logger) *StoreNotifier {
	return &StoreNotifier{
		repo: repo,
		log:  log.With(zap.String("notifier", "store")),
	}
}

func (s *StoreNotifier) Notify(ctx context.Context, n *entity.Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}

	s.log.Debug("Notification stored",
		zap.String("notification_id", n.ID.String()),
		zap.String("recipient_id", n.RecipientID.String()),
		zap.String("type", string(n.Type)),
	)
	return nil
}
