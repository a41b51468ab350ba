package dto

import (
	"time"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
)

// StudentListRequest defines filters for listing students.
type StudentListRequest struct {
	Page      int
	PageSize  int
	Search    string
	GroupName string
}

// StudentCreateRequest captures new student payloads.
type StudentCreateRequest struct {
	Name      string `json:"name" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	GroupName string `json:"group_name" validate:"omitempty,max=64"`
	Course    int    `json:"course" validate:"omitempty,gte=1,lte=4"`
}

// StudentUpdateRequest captures partial student updates.
type StudentUpdateRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2"`
	Email     *string `json:"email" validate:"omitempty,email"`
	GroupName *string `json:"group_name" validate:"omitempty,max=64"`
	Course    *int    `json:"course" validate:"omitempty,gte=1,lte=4"`
}

// StudentResponse serializes a student profile.
type StudentResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	GroupName string    `json:"group_name"`
	Course    int       `json:"course"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StudentListResponse wraps a paginated student listing.
type StudentListResponse struct {
	Items      []StudentResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// NewStudentResponse converts a student model into a DTO.
func NewStudentResponse(student models.Student) StudentResponse {
	return StudentResponse{
		ID:        student.ID,
		Name:      student.Name,
		Email:     student.Email,
		GroupName: student.GroupName,
		Course:    student.Course,
		CreatedAt: student.CreatedAt,
		UpdatedAt: student.UpdatedAt,
	}
}
