package models

import "time"

// Entity types a notification can reference
const (
	RelatedApplication = "application"
	RelatedCandidate   = "candidate"
)

// EntityRef points a notification at the entity that triggered it
type EntityRef struct {
	Type string
	ID   int64
}

// Notification represents a notification row delivered to a user
type Notification struct {
	ID          int64            `json:"id" db:"id"`
	UserID      int64            `json:"userId" db:"user_id"`
	Type        NotificationType `json:"type" db:"type"`
	Title       string           `json:"title" db:"title"`
	Message     string           `json:"message" db:"message"`
	RelatedType *string          `json:"relatedType,omitempty" db:"related_type"`
	RelatedID   *int64           `json:"relatedId,omitempty" db:"related_id"`
	IsRead      bool             `json:"isRead" db:"is_read"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
}
