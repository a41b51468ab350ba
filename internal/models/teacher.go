package models

import "time"

// Teacher is a teaching staff profile managed by administrators.
type Teacher struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Email      string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Department string    `gorm:"size:128" json:"department"`
	Subject    string    `gorm:"size:128" json:"subject"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName keeps the audited table name stable.
func (Teacher) TableName() string {
	return "teachers"
}
