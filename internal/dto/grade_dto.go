package dto

import (
	"time"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
)

// GradeListRequest defines filters for listing grades.
type GradeListRequest struct {
	Page      int
	PageSize  int
	StudentID uint
	TeacherID uint
	Subject   string
	Semester  string
}

// GradeCreateRequest captures new grade payloads.
type GradeCreateRequest struct {
	StudentID uint    `json:"student_id" validate:"required,gt=0"`
	Subject   string  `json:"subject" validate:"required,min=2"`
	Score     float64 `json:"score" validate:"gte=0,lte=100"`
	Semester  string  `json:"semester" validate:"omitempty,max=32"`
	Comment   string  `json:"comment" validate:"omitempty,max=1024"`
}

// GradeUpdateRequest captures partial grade updates.
type GradeUpdateRequest struct {
	Score    *float64 `json:"score" validate:"omitempty,gte=0,lte=100"`
	Semester *string  `json:"semester" validate:"omitempty,max=32"`
	Comment  *string  `json:"comment" validate:"omitempty,max=1024"`
}

// GradeResponse serializes a grade.
type GradeResponse struct {
	ID        uint      `json:"id"`
	StudentID uint      `json:"student_id"`
	TeacherID uint      `json:"teacher_id"`
	Subject   string    `json:"subject"`
	Score     float64   `json:"score"`
	Semester  string    `json:"semester"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GradeListResponse wraps a paginated grade listing.
type GradeListResponse struct {
	Items      []GradeResponse `json:"items"`
	Pagination PaginationMeta  `json:"pagination"`
}

// StudentGradeListResponse is the student's own grade book: their rows plus
// the running average over everything that matched the filters.
type StudentGradeListResponse struct {
	Items      []GradeResponse `json:"items"`
	GPA        float64         `json:"gpa"`
	Pagination PaginationMeta  `json:"pagination"`
}

// NewGradeResponse converts a grade model into a DTO.
func NewGradeResponse(grade models.Grade) GradeResponse {
	return GradeResponse{
		ID:        grade.ID,
		StudentID: grade.StudentID,
		TeacherID: grade.TeacherID,
		Subject:   grade.Subject,
		Score:     grade.Score,
		Semester:  grade.Semester,
		Comment:   grade.Comment,
		CreatedAt: grade.CreatedAt,
		UpdatedAt: grade.UpdatedAt,
	}
}
