package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Quiz struct {
	gorm.Model
	CourseID    uint           `json:"course_id" gorm:"index;not null"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Questions   datatypes.JSON `json:"questions"`
	Deadline    *time.Time     `json:"deadline"`
	IsDeleted   bool           `gorm:"default:false"`
}
