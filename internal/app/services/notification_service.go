package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yassine/stagelink/internal/app/models"
	"github.com/yassine/stagelink/internal/app/models/dto"
	"github.com/yassine/stagelink/internal/pkg/helpers"
	"github.com/yassine/stagelink/internal/pkg/logger"
)

// duplicateWindow is how long a notification about the same entity suppresses
// re-delivery through NotifyOnce.
const duplicateWindow = 5 * time.Minute

// NotificationService defines the interface for notification operations
type NotificationService interface {
	GetNotifications(ctx context.Context, userID int64, page, pageSize int) (*dto.NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	Notify(ctx context.Context, userID int64, nType models.NotificationType, title, message string, ref *models.EntityRef) error
	NotifyOnce(ctx context.Context, userID int64, nType models.NotificationType, title, message string, ref models.EntityRef) error
}

type notificationRepository interface {
	Create(ctx context.Context, n *models.Notification) (int64, error)
	GetByUser(ctx context.Context, userID int64, page, pageSize int) ([]models.Notification, int64, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	HasRecentDuplicate(ctx context.Context, userID int64, nType models.NotificationType, relatedID int64, window time.Duration) (bool, error)
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	notificationRepo notificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo notificationRepository) NotificationService {
	return &notificationServiceImpl{notificationRepo: notificationRepo}
}

// GetNotifications retrieves a user's notifications with pagination
func (s *notificationServiceImpl) GetNotifications(ctx context.Context, userID int64, page, pageSize int) (*dto.NotificationListResponse, error) {
	notifications, total, err := s.notificationRepo.GetByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("error getting notifications: %w", err)
	}

	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error counting unread notifications: %w", err)
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, dto.FromNotification(&notifications[i]))
	}

	return &dto.NotificationListResponse{
		Notifications: responses,
		UnreadCount:   unread,
		Pagination:    helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// GetUnreadCount returns the number of unread notifications for a user
func (s *notificationServiceImpl) GetUnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead marks one of the user's notifications as read
func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return s.notificationRepo.MarkRead(ctx, notificationID, userID)
}

// MarkAllRead marks all of the user's notifications as read
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// Notify delivers a notification to a user. Every call writes a row, so
// repeated triggers each reach the user.
func (s *notificationServiceImpl) Notify(ctx context.Context, userID int64, nType models.NotificationType, title, message string, ref *models.EntityRef) error {
	n := &models.Notification{
		UserID:  userID,
		Type:    nType,
		Title:   title,
		Message: message,
	}
	if ref != nil {
		n.RelatedType = &ref.Type
		n.RelatedID = &ref.ID
	}

	if _, err := s.notificationRepo.Create(ctx, n); err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}
	return nil
}

// NotifyOnce delivers a notification unless the user already received one of
// the same type about the same entity within the duplicate window.
func (s *notificationServiceImpl) NotifyOnce(ctx context.Context, userID int64, nType models.NotificationType, title, message string, ref models.EntityRef) error {
	dup, err := s.notificationRepo.HasRecentDuplicate(ctx, userID, nType, ref.ID, duplicateWindow)
	if err != nil {
		return fmt.Errorf("error checking duplicate notification: %w", err)
	}
	if dup {
		logger.Debug().Int64("userID", userID).Str("type", string(nType)).Int64("relatedID", ref.ID).Msg("Skipping duplicate notification")
		return nil
	}

	return s.Notify(ctx, userID, nType, title, message, &ref)
}
