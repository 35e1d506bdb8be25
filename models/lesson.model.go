package models

import "gorm.io/gorm"

type Lesson struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	VideoURL   string `json:"video_url"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	Status     string `json:"status" gorm:"default:'published'"` // draft, published
	IsDeleted  bool   `gorm:"default:false"`
}
