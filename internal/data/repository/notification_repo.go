package repository

import (
	"context"
	"fmt"

	"venue-booking/internal/data/entity"
	"venue-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationRepository is the user inbox.
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindByRecipientID(ctx context.Context, recipientID uuid.UUID, limit, offset int) ([]*entity.Notification, error)
	CountByRecipientID(ctx context.Context, recipientID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) error
}

type notificationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewNotificationRepository(db database.PgxIface, log *zap.Logger) NotificationRepository {
	return &notificationRepository{
		db:  db,
		log: log.With(zap.String("repository", "notification")),
	}
}

func (r *notificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, recipient_id, sender_id, type, message, link, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		n.ID,
		n.RecipientID,
		n.SenderID,
		n.Type,
		n.Message,
		n.Link,
		n.IsRead,
		n.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create notification",
			zap.Error(err),
			zap.String("recipient_id", n.RecipientID.String()),
			zap.String("type", string(n.Type)),
		)
		return fmt.Errorf("create notification for %s: %w", n.RecipientID.String(), err)
	}

	return nil
}

func (r *notificationRepository) FindByRecipientID(ctx context.Context, recipientID uuid.UUID, limit, offset int) ([]*entity.Notification, error) {
	query := `
		SELECT id, recipient_id, sender_id, type, message, link, is_read, created_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, recipientID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find notifications",
			zap.Error(err),
			zap.String("recipient_id", recipientID.String()),
		)
		return nil, fmt.Errorf("find notifications for %s: %w", recipientID.String(), err)
	}
	defer rows.Close()

	var notifications []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.SenderID, &n.Type, &n.Message, &n.Link, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification row: %w", err)
		}
		notifications = append(notifications, &n)
	}

	return notifications, rows.Err()
}

func (r *notificationRepository) CountByRecipientID(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1`, recipientID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count notifications for %s: %w", recipientID.String(), err)
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	result, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND recipient_id = $2`,
		id, recipientID,
	)
	if err != nil {
		r.log.Error("Failed to mark notification read",
			zap.Error(err),
			zap.String("notification_id", id.String()),
		)
		return fmt.Errorf("mark notification %s read: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", id.String(), ErrNotFound)
	}

	return nil
}
