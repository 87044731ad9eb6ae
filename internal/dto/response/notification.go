package response

import (
	"time"

	"venue-booking/internal/data/entity"
)

type NotificationResponse struct {
	ID        string                  `json:"id"`
	SenderID  *string                 `json:"sender_id,omitempty"`
	Type      entity.NotificationType `json:"type"`
	Message   string                  `json:"message"`
	Link      string                  `json:"link"`
	IsRead    bool                    `json:"is_read"`
	CreatedAt time.Time               `json:"created_at"`
}

func NotificationToResponse(n *entity.Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		Type:      n.Type,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if n.SenderID != nil {
		sender := n.SenderID.String()
		resp.SenderID = &sender
	}
	return resp
}
