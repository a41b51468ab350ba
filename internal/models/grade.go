package models

import "time"

// Grade is a single mark a teacher assigned to a student for a subject.
type Grade struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;index" json:"student_id"`
	TeacherID uint      `gorm:"not null;index" json:"teacher_id"`
	Subject   string    `gorm:"size:128;not null" json:"subject"`
	Score     float64   `gorm:"not null" json:"score"`
	Semester  string    `gorm:"size:32" json:"semester"`
	Comment   string    `gorm:"size:1024" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the audited table name stable.
func (Grade) TableName() string {
	return "grades"
}
