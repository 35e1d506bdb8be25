package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Title       string `json:"title"`
	Description string `json:"description"`
	Slug        string `json:"slug" gorm:"uniqueIndex"`
	Category    string `json:"category"`
	TeacherID   uint   `json:"teacher_id" gorm:"index"`
	TeacherName string `json:"teacher_name"`
	IsPublished bool   `json:"is_published" gorm:"default:true"`
	IsDeleted   bool   `gorm:"default:false"`
}
