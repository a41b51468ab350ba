package dto

import (
	"time"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
)

// MaterialListRequest defines filters for listing study materials.
type MaterialListRequest struct {
	Page      int
	PageSize  int
	TeacherID uint
	Subject   string
}

// MaterialCreateRequest captures new material payloads. The file itself is
// stored externally; only the URL is recorded.
type MaterialCreateRequest struct {
	Title   string `json:"title" validate:"required,min=2"`
	Subject string `json:"subject" validate:"omitempty,max=128"`
	FileURL string `json:"file_url" validate:"required,url"`
}

// MaterialUpdateRequest captures partial material updates.
type MaterialUpdateRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=2"`
	Subject *string `json:"subject" validate:"omitempty,max=128"`
	FileURL *string `json:"file_url" validate:"omitempty,url"`
}

// MaterialResponse serializes study-material metadata.
type MaterialResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Subject   string    `json:"subject"`
	FileURL   string    `json:"file_url"`
	TeacherID uint      `json:"teacher_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MaterialListResponse wraps a paginated material listing.
type MaterialListResponse struct {
	Items      []MaterialResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
}

// NewMaterialResponse converts a material model into a DTO.
func NewMaterialResponse(material models.Material) MaterialResponse {
	return MaterialResponse{
		ID:        material.ID,
		Title:     material.Title,
		Subject:   material.Subject,
		FileURL:   material.FileURL,
		TeacherID: material.TeacherID,
		CreatedAt: material.CreatedAt,
		UpdatedAt: material.UpdatedAt,
	}
}
