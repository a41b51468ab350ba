package dto

import (
	"time"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
)

// LibraryBookListRequest defines filters for browsing the catalog.
type LibraryBookListRequest struct {
	Page          int
	PageSize      int
	Search        string
	Category      string
	AvailableOnly bool
}

// LibraryBookCreateRequest captures new catalog entries.
type LibraryBookCreateRequest struct {
	Title     string `json:"title" validate:"required,min=2"`
	Author    string `json:"author" validate:"required,min=2"`
	Category  string `json:"category" validate:"omitempty,max=64"`
	Pages     int    `json:"pages" validate:"omitempty,gt=0"`
	Available *bool  `json:"available"`
}

// LibraryBookUpdateRequest captures partial catalog updates.
type LibraryBookUpdateRequest struct {
	Title     *string `json:"title" validate:"omitempty,min=2"`
	Author    *string `json:"author" validate:"omitempty,min=2"`
	Category  *string `json:"category" validate:"omitempty,max=64"`
	Pages     *int    `json:"pages" validate:"omitempty,gt=0"`
	Available *bool   `json:"available"`
}

// LibraryBookResponse serializes a catalog entry.
type LibraryBookResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	Pages     int       `json:"pages"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LibraryBookListResponse wraps a paginated catalog listing.
type LibraryBookListResponse struct {
	Items      []LibraryBookResponse `json:"items"`
	Pagination PaginationMeta        `json:"pagination"`
}

// NewLibraryBookResponse converts a catalog model into a DTO.
func NewLibraryBookResponse(book models.LibraryBook) LibraryBookResponse {
	return LibraryBookResponse{
		ID:        book.ID,
		Title:     book.Title,
		Author:    book.Author,
		Category:  book.Category,
		Pages:     book.Pages,
		Available: book.Available,
		CreatedAt: book.CreatedAt,
		UpdatedAt: book.UpdatedAt,
	}
}
