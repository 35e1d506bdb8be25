package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses
const (
	EnrollmentPending  = "PENDING"
	EnrollmentApproved = "APPROVED"
)

// Enrollment tracks a student's enrollment in a course with cached progress.
// Progress is owned by the progress service; other writers only touch Status.
type Enrollment struct {
	gorm.Model
	StudentID    uint       `json:"student_id" gorm:"index;not null;uniqueIndex:idx_enrollment_student_course"`
	CourseID     uint       `json:"course_id" gorm:"index;not null;uniqueIndex:idx_enrollment_student_course"`
	Status       string     `json:"status" gorm:"default:'PENDING'"` // PENDING, APPROVED
	Progress     int        `json:"progress" gorm:"default:0"`       // Completion percentage (0-100)
	LastAccessed *time.Time `json:"last_accessed"`
	IsDeleted    bool       `gorm:"default:false"`
	Student      User       `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Course       Course     `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
