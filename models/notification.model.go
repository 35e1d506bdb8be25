package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification kinds
const (
	NotificationNewLesson        = "new_lesson"
	NotificationNewQuiz          = "new_quiz"
	NotificationNewAssignment    = "new_assignment"
	NotificationDeadlineReminder = "deadline_reminder"
	NotificationGeneric          = "generic"
)

// Notification is one in-app feed entry for a student. The read flag only
// ever transitions false -> true; rows are never deleted by the service.
type Notification struct {
	gorm.Model
	StudentID   uint       `json:"student_id" gorm:"index;not null"`
	CourseID    uint       `json:"course_id" gorm:"index;not null"`
	TeacherName string     `json:"teacher_name"`
	Message     string     `json:"message"`
	Kind        string     `json:"kind" gorm:"default:'generic'"`
	IsRead      bool       `json:"is_read" gorm:"default:false"`
	ReadAt      *time.Time `json:"read_at"`
	IsDeleted   bool       `gorm:"default:false"`
}
