package dto

import (
	"time"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
)

// ScheduleListRequest defines filters for listing timetable slots.
type ScheduleListRequest struct {
	GroupName string
	TeacherID uint
	Weekday   *int
}

// ScheduleCreateRequest captures new timetable slot payloads.
type ScheduleCreateRequest struct {
	GroupName string `json:"group_name" validate:"required,max=64"`
	Subject   string `json:"subject" validate:"required,min=2"`
	TeacherID uint   `json:"teacher_id" validate:"omitempty,gt=0"`
	Weekday   int    `json:"weekday" validate:"gte=1,lte=7"`
	StartTime string `json:"start_time" validate:"required,len=5"`
	EndTime   string `json:"end_time" validate:"required,len=5"`
	Room      string `json:"room" validate:"omitempty,max=32"`
}

// ScheduleUpdateRequest captures partial slot updates.
type ScheduleUpdateRequest struct {
	Subject   *string `json:"subject" validate:"omitempty,min=2"`
	TeacherID *uint   `json:"teacher_id" validate:"omitempty,gt=0"`
	Weekday   *int    `json:"weekday" validate:"omitempty,gte=1,lte=7"`
	StartTime *string `json:"start_time" validate:"omitempty,len=5"`
	EndTime   *string `json:"end_time" validate:"omitempty,len=5"`
	Room      *string `json:"room" validate:"omitempty,max=32"`
}

// ScheduleResponse serializes a timetable slot.
type ScheduleResponse struct {
	ID        uint      `json:"id"`
	GroupName string    `json:"group_name"`
	Subject   string    `json:"subject"`
	TeacherID uint      `json:"teacher_id"`
	Weekday   int       `json:"weekday"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Room      string    `json:"room"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewScheduleResponse converts a timetable slot model into a DTO.
func NewScheduleResponse(entry models.ScheduleEntry) ScheduleResponse {
	return ScheduleResponse{
		ID:        entry.ID,
		GroupName: entry.GroupName,
		Subject:   entry.Subject,
		TeacherID: entry.TeacherID,
		Weekday:   entry.Weekday,
		StartTime: entry.StartTime,
		EndTime:   entry.EndTime,
		Room:      entry.Room,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}
