package notify

import (
	"fmt"
	"lms/models"
	"lms/services"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNotifications(t *testing.T, feed *Feed, studentID uint, count int) []models.Notification {
	t.Helper()
	created := make([]models.Notification, 0, count)
	for i := 0; i < count; i++ {
		n := models.Notification{
			StudentID: studentID,
			CourseID:  1,
			Message:   fmt.Sprintf("Notification %d", i+1),
			Kind:      models.NotificationGeneric,
		}
		require.NoError(t, feed.DB.Create(&n).Error)
		created = append(created, n)
	}
	return created
}

func TestListNewestFirstWithDefaultLimit(t *testing.T) {
	db := setupTestDB(t)
	feed := NewFeed(db)
	created := seedNotifications(t, feed, 1, 12)

	notifications, err := feed.List(1, 0)
	require.NoError(t, err)
	require.Len(t, notifications, 10)

	// Most recently created comes first
	assert.Equal(t, created[len(created)-1].ID, notifications[0].ID)

	// Explicit limit wins over the default
	notifications, err = feed.List(1, 3)
	require.NoError(t, err)
	assert.Len(t, notifications, 3)
}

func TestListOnlyReturnsOwnNotifications(t *testing.T) {
	db := setupTestDB(t)
	feed := NewFeed(db)
	seedNotifications(t, feed, 1, 2)
	seedNotifications(t, feed, 2, 3)

	notifications, err := feed.List(1, 0)
	require.NoError(t, err)
	assert.Len(t, notifications, 2)
	for _, n := range notifications {
		assert.Equal(t, uint(1), n.StudentID)
	}
}

func TestMarkReadIsOneWayAndIdempotent(t *testing.T) {
	db := setupTestDB(t)
	feed := NewFeed(db)
	created := seedNotifications(t, feed, 1, 1)

	first, err := feed.MarkRead(created[0].ID, 1)
	require.NoError(t, err)
	assert.True(t, first.IsRead)
	require.NotNil(t, first.ReadAt)

	// Marking again is a no-op success that keeps the original read time
	second, err := feed.MarkRead(created[0].ID, 1)
	require.NoError(t, err)
	assert.True(t, second.IsRead)
	require.NotNil(t, second.ReadAt)
	assert.Equal(t, first.ReadAt.Unix(), second.ReadAt.Unix())
}

func TestMarkReadRejectsNonOwner(t *testing.T) {
	db := setupTestDB(t)
	feed := NewFeed(db)
	created := seedNotifications(t, feed, 1, 1)

	_, err := feed.MarkRead(created[0].ID, 2)
	assert.ErrorIs(t, err, services.ErrForbidden)

	// The record is left unread
	var n models.Notification
	require.NoError(t, db.First(&n, created[0].ID).Error)
	assert.False(t, n.IsRead)
}

func TestMarkReadMissingNotification(t *testing.T) {
	db := setupTestDB(t)
	feed := NewFeed(db)

	_, err := feed.MarkRead(999, 1)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestUnreadCount(t *testing.T) {
	db := setupTestDB(t)
	feed := NewFeed(db)
	created := seedNotifications(t, feed, 1, 3)

	count, err := feed.UnreadCount(1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	_, err = feed.MarkRead(created[0].ID, 1)
	require.NoError(t, err)

	count, err = feed.UnreadCount(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
