package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yassine/stagelink/internal/app/models"
	"github.com/yassine/stagelink/internal/db"
	"github.com/yassine/stagelink/internal/pkg/apperrors"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a notification for a user
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) (int64, error) {
	sql, args, err := r.sb.Insert("notifications").
		Columns("user_id", "type", "title", "message", "related_type", "related_id", "is_read", "created_at").
		Values(n.UserID, n.Type, n.Title, n.Message, n.RelatedType, n.RelatedID, false, time.Now()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create notification query: %w", err)
	}

	var id int64
	if err := db.QuerierFrom(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating notification: %w", err)
	}
	return id, nil
}

// GetByUser retrieves a user's notifications, newest first
func (r *NotificationRepository) GetByUser(ctx context.Context, userID int64, page, pageSize int) ([]models.Notification, int64, error) {
	offset := (page - 1) * pageSize
	sql, args, err := r.sb.Select("id", "user_id", "type", "title", "message", "related_type", "related_id", "is_read", "created_at").
		From("notifications").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Column("COUNT(*) OVER()").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list notifications query: %w", err)
	}

	rows, err := db.QuerierFrom(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	var total int64
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.RelatedType, &n.RelatedID, &n.IsRead, &n.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, total, nil
}

// CountUnread returns the number of unread notifications for a user
func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("notifications").
		Where(squirrel.Eq{"user_id": userID, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count unread query: %w", err)
	}

	var count int64
	if err := db.QuerierFrom(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks a single notification as read. The notification must belong
// to the given user.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	sql, args, err := r.sb.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark read query: %w", err)
	}

	result, err := db.QuerierFrom(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification of a user as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	sql, args, err := r.sb.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"user_id": userID, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build mark all read query: %w", err)
	}

	result, err := db.QuerierFrom(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error marking notifications read: %w", err)
	}
	return result.RowsAffected(), nil
}

// HasRecentDuplicate reports whether the user already received a notification
// of the same type about the same entity within the given window. Used to
// suppress duplicate deliveries from rapid repeated triggers.
func (r *NotificationRepository) HasRecentDuplicate(ctx context.Context, userID int64, nType models.NotificationType, relatedID int64, window time.Duration) (bool, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("notifications").
		Where(squirrel.Eq{"user_id": userID, "type": nType, "related_id": relatedID}).
		Where(squirrel.GtOrEq{"created_at": time.Now().Add(-window)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build duplicate check query: %w", err)
	}

	var count int64
	if err := db.QuerierFrom(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("error checking duplicate notifications: %w", err)
	}
	return count > 0, nil
}
