package models

import "time"

// ScheduleEntry is one lesson slot on the weekly timetable.
type ScheduleEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GroupName string    `gorm:"size:64;not null;index" json:"group_name"`
	Subject   string    `gorm:"size:128;not null" json:"subject"`
	TeacherID uint      `gorm:"index" json:"teacher_id"`
	Weekday   int       `gorm:"not null" json:"weekday"`
	StartTime string    `gorm:"size:8;not null" json:"start_time"`
	EndTime   string    `gorm:"size:8;not null" json:"end_time"`
	Room      string    `gorm:"size:32" json:"room"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the audited table name stable.
func (ScheduleEntry) TableName() string {
	return "schedule"
}
