package models

import (
	"time"

	"gorm.io/gorm"
)

// StudentProgress is one completion record for a (student, course, item)
// tuple. Exactly zero or one of LessonID/QuizID/AssignmentID is set; a nil
// triple is a course-level record. The progress service upserts on the full
// tuple, so at most one row exists per tuple.
type StudentProgress struct {
	gorm.Model
	StudentID    uint      `json:"student_id" gorm:"index;not null"`
	CourseID     uint      `json:"course_id" gorm:"index;not null"`
	LessonID     *uint     `json:"lesson_id"`
	QuizID       *uint     `json:"quiz_id"`
	AssignmentID *uint     `json:"assignment_id"`
	Completed    bool      `json:"completed" gorm:"default:false"`
	Score        *float64  `json:"score"`
	SubmittedAt  time.Time `json:"submitted_at"`
	IsDeleted    bool      `gorm:"default:false"`
}
