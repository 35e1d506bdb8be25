package models

import (
	"time"

	"gorm.io/gorm"
)

type Assignment struct {
	gorm.Model
	CourseID    uint       `json:"course_id" gorm:"index;not null"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	MaxScore    int        `json:"max_score" gorm:"default:100"`
	IsDeleted   bool       `gorm:"default:false"`
}
