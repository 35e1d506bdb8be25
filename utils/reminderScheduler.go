package utils

import (
	"context"
	"lms/database"
	"lms/models"
	"lms/services/notify"
	"log"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// InitializeReminderScheduler sets up the deadline reminder scheduler
func InitializeReminderScheduler() *cron.Cron {
	log.Println("[REMINDER-SCHEDULER] Initializing deadline reminder scheduler...")

	c := cron.New()

	// Run daily at 8 AM to remind students about tomorrow's deadlines
	c.AddFunc("0 8 * * *", func() {
		log.Println("[REMINDER-SCHEDULER] Running daily deadline check...")
		ProcessDeadlineReminders()
	})

	c.Start()
	log.Println("[REMINDER-SCHEDULER] Deadline reminder scheduler started - runs daily at 8 AM")
	return c
}

// ProcessDeadlineReminders notifies approved students about quizzes and
// assignments due tomorrow. The rendered message embeds the due date, so an
// existing notification with the same message for the same student marks the
// reminder as already sent.
func ProcessDeadlineReminders() {
	db := database.Database.Db

	tomorrow := now.With(time.Now().AddDate(0, 0, 1))
	from := tomorrow.BeginningOfDay()
	to := tomorrow.EndOfDay()

	var quizzes []models.Quiz
	if err := db.Where("deadline BETWEEN ? AND ? AND is_deleted = ?", from, to, false).Find(&quizzes).Error; err != nil {
		log.Printf("[REMINDER-SCHEDULER] Error fetching due quizzes: %v", err)
		return
	}

	var assignments []models.Assignment
	if err := db.Where("deadline BETWEEN ? AND ? AND is_deleted = ?", from, to, false).Find(&assignments).Error; err != nil {
		log.Printf("[REMINDER-SCHEDULER] Error fetching due assignments: %v", err)
		return
	}

	for _, quiz := range quizzes {
		remindRoster(quiz.CourseID, quiz.Title, quiz.Deadline)
	}
	for _, assignment := range assignments {
		remindRoster(assignment.CourseID, assignment.Title, assignment.Deadline)
	}
}

func remindRoster(courseID uint, title string, deadline *time.Time) {
	db := database.Database.Db
	message := notify.RenderMessage(models.NotificationDeadlineReminder, notify.ContentPayload{Title: title, Deadline: deadline})

	var roster []models.Enrollment
	if err := db.Where("course_id = ? AND status = ? AND is_deleted = ?", courseID, models.EnrollmentApproved, false).Find(&roster).Error; err != nil {
		log.Printf("[REMINDER-SCHEDULER] Error fetching roster for course %d: %v", courseID, err)
		return
	}

	sent := 0
	for _, enrollment := range roster {
		// Skip students already reminded about this item
		var existing models.Notification
		if err := db.Where("student_id = ? AND course_id = ? AND kind = ? AND message = ? AND is_deleted = ?",
			enrollment.StudentID, courseID, models.NotificationDeadlineReminder, message, false).
			First(&existing).Error; err == nil {
			continue
		}

		n := models.Notification{
			StudentID: enrollment.StudentID,
			CourseID:  courseID,
			Message:   message,
			Kind:      models.NotificationDeadlineReminder,
		}
		if err := db.WithContext(context.Background()).Create(&n).Error; err != nil {
			log.Printf("[REMINDER-SCHEDULER] Error reminding student %d for course %d: %v", enrollment.StudentID, courseID, err)
			continue
		}
		sent++
	}

	if sent > 0 {
		log.Printf("[REMINDER-SCHEDULER] Sent %d reminders for %q (course %d)", sent, title, courseID)
	}
}
