package usecase

import (
	"context"
	"fmt"

	"venue-booking/internal/data/repository"
	"venue-booking/internal/dto/request"
	"venue-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService is the read side of the inbox the StoreNotifier writes.
type NotificationService interface {
	GetUserNotifications(ctx context.Context, actorID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.NotificationResponse], error)
	MarkRead(ctx context.Context, actorID, notificationID uuid.UUID) error
}

type notificationService struct {
	repo repository.NotificationRepository
	log  *zap.Logger
}

func NewNotificationService(repo repository.NotificationRepository, log *zap.Logger) NotificationService {
	return &notificationService{
		repo: repo,
		log:  log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) GetUserNotifications(ctx context.Context, actorID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.NotificationResponse], error) {
	if actorID == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	notifications, err := s.repo.FindByRecipientID(ctx, actorID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get notifications: %w", err)
	}

	total, err := s.repo.CountByRecipientID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("count notifications: %w", err)
	}

	data := make([]response.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		data = append(data, response.NotificationToResponse(n))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

// MarkRead only touches notifications addressed to the actor; others
// report not found.
func (s *notificationService) MarkRead(ctx context.Context, actorID, notificationID uuid.UUID) error {
	if actorID == uuid.Nil {
		return ErrUnauthenticated
	}

	if err := s.repo.MarkRead(ctx, notificationID, actorID); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
