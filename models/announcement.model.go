package models

import "gorm.io/gorm"

type Announcement struct {
	gorm.Model
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	Message   string `json:"message"`
	IsDeleted bool   `gorm:"default:false"`
}
