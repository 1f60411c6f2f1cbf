package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yassine/stagelink/internal/app/models"
)

func TestNotify_AlwaysDelivers(t *testing.T) {
	ctx := context.Background()
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)

	ref := &models.EntityRef{Type: models.RelatedApplication, ID: 7}
	require.NoError(t, svc.Notify(ctx, 1, models.NotificationApplicationAccepted, "Application accepted", "accepted", ref))
	require.NoError(t, svc.Notify(ctx, 1, models.NotificationApplicationAccepted, "Application accepted", "accepted", ref))

	// Repeated identical triggers each reach the user.
	require.Len(t, repo.notifications, 2)
	require.NotNil(t, repo.notifications[0].RelatedID)
	assert.Equal(t, int64(7), *repo.notifications[0].RelatedID)
	assert.Equal(t, models.RelatedApplication, *repo.notifications[0].RelatedType)
}

func TestNotifyOnce_SuppressesRecentDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)

	ref := models.EntityRef{Type: models.RelatedCandidate, ID: 10}
	err := svc.NotifyOnce(ctx, 1, models.NotificationNewCandidate, "New candidate available", "Marie Dupont just joined", ref)
	require.NoError(t, err)

	// Same candidate right after: suppressed, even with a different message.
	err = svc.NotifyOnce(ctx, 1, models.NotificationNewCandidate, "New candidate available", "Marie Dupont updated her profile", ref)
	require.NoError(t, err)
	assert.Len(t, repo.notifications, 1)

	// Another candidate with the same name is delivered.
	other := models.EntityRef{Type: models.RelatedCandidate, ID: 11}
	err = svc.NotifyOnce(ctx, 1, models.NotificationNewCandidate, "New candidate available", "Marie Dupont just joined", other)
	require.NoError(t, err)
	assert.Len(t, repo.notifications, 2)

	// Same candidate to another user is delivered.
	err = svc.NotifyOnce(ctx, 2, models.NotificationNewCandidate, "New candidate available", "Marie Dupont just joined", ref)
	require.NoError(t, err)
	assert.Len(t, repo.notifications, 3)
}

func TestNotifyOnce_DeliversAfterWindow(t *testing.T) {
	ctx := context.Background()
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)

	ref := models.EntityRef{Type: models.RelatedCandidate, ID: 10}
	require.NoError(t, svc.NotifyOnce(ctx, 1, models.NotificationNewCandidate, "New candidate available", "hello", ref))

	// Age the stored notification past the suppression window.
	repo.notifications[0].CreatedAt = time.Now().Add(-6 * time.Minute)

	require.NoError(t, svc.NotifyOnce(ctx, 1, models.NotificationNewCandidate, "New candidate available", "hello", ref))
	assert.Len(t, repo.notifications, 2)
}

func TestGetNotifications_IncludesUnreadCount(t *testing.T) {
	ctx := context.Background()
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)

	require.NoError(t, svc.Notify(ctx, 1, models.NotificationNewApplication, "a", "m1", nil))
	require.NoError(t, svc.Notify(ctx, 1, models.NotificationNewApplication, "a", "m2", nil))
	require.NoError(t, svc.MarkRead(ctx, 1, repo.notifications[0].ID))

	resp, err := svc.GetNotifications(ctx, 1, 1, 10)
	require.NoError(t, err)
	assert.Len(t, resp.Notifications, 2)
	assert.Equal(t, int64(1), resp.UnreadCount)
}

func TestMarkAllRead(t *testing.T) {
	ctx := context.Background()
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)

	require.NoError(t, svc.Notify(ctx, 1, models.NotificationNewApplication, "a", "m1", nil))
	require.NoError(t, svc.Notify(ctx, 1, models.NotificationNewApplication, "a", "m2", nil))
	require.NoError(t, svc.Notify(ctx, 2, models.NotificationNewApplication, "a", "m3", nil))

	count, err := svc.MarkAllRead(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	unread, err := svc.GetUnreadCount(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)
}
