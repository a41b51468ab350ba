package models

import "time"

// Student is an enrolled student profile managed by administrators.
type Student struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	GroupName string    `gorm:"size:64" json:"group_name"`
	Course    int       `json:"course"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the audited table name stable.
func (Student) TableName() string {
	return "students"
}
