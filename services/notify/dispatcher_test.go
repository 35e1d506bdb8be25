package notify

import (
	"context"
	"fmt"
	"lms/models"
	"lms/services"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // keep every query on the one :memory: database

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Enrollment{},
		&models.Notification{},
	))
	return db
}

func seedRoster(t *testing.T, db *gorm.DB, courseID uint, statuses ...string) {
	t.Helper()
	for i, status := range statuses {
		enrollment := models.Enrollment{StudentID: uint(i + 1), CourseID: courseID, Status: status}
		require.NoError(t, db.Create(&enrollment).Error)
	}
}

// flakyWriter fails writes for selected students and delegates the rest.
type flakyWriter struct {
	db      *gorm.DB
	failFor map[uint]bool
}

func (w flakyWriter) Create(ctx context.Context, n *models.Notification) error {
	if w.failFor[n.StudentID] {
		return fmt.Errorf("write failed for student %d", n.StudentID)
	}
	return w.db.WithContext(ctx).Create(n).Error
}

func TestDispatchNotifiesEveryApprovedStudent(t *testing.T) {
	db := setupTestDB(t)
	seedRoster(t, db, 1, models.EnrollmentApproved, models.EnrollmentApproved, models.EnrollmentApproved)
	dispatcher := NewDispatcher(db)

	result, err := dispatcher.DispatchContentNotification(context.Background(), 1, models.NotificationNewQuiz, ContentPayload{
		Title:       "Fractions Quiz",
		TeacherName: "Ms. Rivera",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.NotifiedCount)
	assert.Empty(t, result.Failures())

	var notifications []models.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 3)
	for _, n := range notifications {
		assert.Equal(t, "New quiz available: Fractions Quiz", n.Message)
		assert.Equal(t, models.NotificationNewQuiz, n.Kind)
		assert.False(t, n.IsRead)
	}
}

func TestDispatchIsolatesPerRecipientFailures(t *testing.T) {
	db := setupTestDB(t)
	seedRoster(t, db, 1, models.EnrollmentApproved, models.EnrollmentApproved, models.EnrollmentApproved)

	dispatcher := NewDispatcher(db)
	dispatcher.Writer = flakyWriter{db: db, failFor: map[uint]bool{2: true}}

	result, err := dispatcher.DispatchContentNotification(context.Background(), 1, models.NotificationNewLesson, ContentPayload{Title: "Intro"})
	require.NoError(t, err)

	assert.Equal(t, 2, result.NotifiedCount)
	failed := result.Failures()
	require.Len(t, failed, 1)
	assert.Equal(t, uint(2), failed[0].StudentID)

	// Students 1 and 3 still got their notifications
	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestDispatchSkipsPendingEnrollments(t *testing.T) {
	db := setupTestDB(t)
	seedRoster(t, db, 1, models.EnrollmentApproved, models.EnrollmentPending)
	dispatcher := NewDispatcher(db)

	result, err := dispatcher.DispatchContentNotification(context.Background(), 1, models.NotificationNewAssignment, ContentPayload{Title: "Essay"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.NotifiedCount)

	var notifications []models.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, uint(1), notifications[0].StudentID)
}

func TestDispatchValidation(t *testing.T) {
	db := setupTestDB(t)
	dispatcher := NewDispatcher(db)

	_, err := dispatcher.DispatchContentNotification(context.Background(), 0, models.NotificationNewQuiz, ContentPayload{Title: "x"})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = dispatcher.DispatchContentNotification(context.Background(), 1, "broadcast", ContentPayload{Title: "x"})
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestRenderMessage(t *testing.T) {
	deadline := time.Date(2026, 9, 4, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, "New lesson available: Photosynthesis",
		RenderMessage(models.NotificationNewLesson, ContentPayload{Title: "Photosynthesis"}))
	assert.Equal(t, "New quiz available: Cell Biology - Due 9/4/2026",
		RenderMessage(models.NotificationNewQuiz, ContentPayload{Title: "Cell Biology", Deadline: &deadline}))
	assert.Equal(t, "New assignment available: Lab Report - Due 9/4/2026",
		RenderMessage(models.NotificationNewAssignment, ContentPayload{Title: "Lab Report", Deadline: &deadline}))
	assert.Equal(t, "Class moved to room 204",
		RenderMessage(models.NotificationGeneric, ContentPayload{Title: "Class moved to room 204"}))
}
