package notify

import (
	"fmt"
	"lms/models"
	"lms/services"
	"time"

	"gorm.io/gorm"
)

const defaultFeedLimit = 10

// Feed is the student-facing read path over notifications.
type Feed struct {
	DB *gorm.DB
}

func NewFeed(db *gorm.DB) *Feed {
	return &Feed{DB: db}
}

// List returns the student's notifications newest-first, capped at limit
// (default 10).
func (f *Feed) List(studentID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}

	var notifications []models.Notification
	if err := f.DB.Where("student_id = ? AND is_deleted = ?", studentID, false).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications for the badge.
func (f *Feed) UnreadCount(studentID uint) (int64, error) {
	var count int64
	if err := f.DB.Model(&models.Notification{}).
		Where("student_id = ? AND is_read = ? AND is_deleted = ?", studentID, false, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead flips the read flag for a notification owned by studentID. The
// transition is one-way: marking an already-read notification again is a
// no-op success. Acting on someone else's notification fails with
// ErrForbidden and leaves it untouched.
func (f *Feed) MarkRead(notificationID, studentID uint) (models.Notification, error) {
	var notification models.Notification

	err := f.DB.Where("id = ? AND is_deleted = ?", notificationID, false).First(&notification).Error
	if err == gorm.ErrRecordNotFound {
		return notification, fmt.Errorf("%w: notification %d", services.ErrNotFound, notificationID)
	}
	if err != nil {
		return notification, fmt.Errorf("lookup notification: %w", err)
	}

	if notification.StudentID != studentID {
		return models.Notification{}, fmt.Errorf("%w: notification belongs to another student", services.ErrForbidden)
	}

	if notification.IsRead {
		return notification, nil
	}

	now := time.Now()
	notification.IsRead = true
	notification.ReadAt = &now
	if err := f.DB.Save(&notification).Error; err != nil {
		return notification, fmt.Errorf("mark notification read: %w", err)
	}
	return notification, nil
}
