package dto

import (
	"time"

	"github.com/yassine/stagelink/internal/app/models"
)

// NotificationResponse represents notification information
type NotificationResponse struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	RelatedType *string   `json:"relatedType,omitempty"`
	RelatedID   *int64    `json:"relatedId,omitempty"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NotificationListResponse represents a paginated list of notifications
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unreadCount"`
	Pagination    PaginationInfo         `json:"pagination"`
}

// UnreadCountResponse represents the number of unread notifications
type UnreadCountResponse struct {
	UnreadCount int64 `json:"unreadCount"`
}

// FromNotification converts a models.Notification to a NotificationResponse
func FromNotification(n *models.Notification) NotificationResponse {
	if n == nil {
		return NotificationResponse{}
	}
	return NotificationResponse{
		ID:          n.ID,
		Type:        string(n.Type),
		Title:       n.Title,
		Message:     n.Message,
		RelatedType: n.RelatedType,
		RelatedID:   n.RelatedID,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt,
	}
}
