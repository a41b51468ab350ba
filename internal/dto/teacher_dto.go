package dto

import (
	"time"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
)

// TeacherListRequest defines filters for listing teachers.
type TeacherListRequest struct {
	Page       int
	PageSize   int
	Search     string
	Department string
}

// TeacherCreateRequest captures new teacher payloads.
type TeacherCreateRequest struct {
	Name       string `json:"name" validate:"required,min=2"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department" validate:"omitempty,max=128"`
	Subject    string `json:"subject" validate:"omitempty,max=128"`
}

// TeacherUpdateRequest captures partial teacher updates.
type TeacherUpdateRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=2"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Department *string `json:"department" validate:"omitempty,max=128"`
	Subject    *string `json:"subject" validate:"omitempty,max=128"`
}

// TeacherResponse serializes a teacher profile.
type TeacherResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Subject    string    `json:"subject"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TeacherListResponse wraps a paginated teacher listing.
type TeacherListResponse struct {
	Items      []TeacherResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// NewTeacherResponse converts a teacher model into a DTO.
func NewTeacherResponse(teacher models.Teacher) TeacherResponse {
	return TeacherResponse{
		ID:         teacher.ID,
		Name:       teacher.Name,
		Email:      teacher.Email,
		Department: teacher.Department,
		Subject:    teacher.Subject,
		CreatedAt:  teacher.CreatedAt,
		UpdatedAt:  teacher.UpdatedAt,
	}
}
