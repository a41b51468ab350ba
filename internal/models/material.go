package models

import "time"

// Material is study-material metadata shared by a teacher. The file itself
// lives in external storage; only its URL is kept here.
type Material struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Subject   string    `gorm:"size:128" json:"subject"`
	FileURL   string    `gorm:"size:1024;not null" json:"file_url"`
	TeacherID uint      `gorm:"not null;index" json:"teacher_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the audited table name stable.
func (Material) TableName() string {
	return "materials"
}
