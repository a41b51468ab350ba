package dto

import (
	"time"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
)

// NewsListRequest defines filters for listing announcements.
type NewsListRequest struct {
	Page          int
	PageSize      int
	AuthorID      uint
	PublishedOnly bool
}

// NewsCreateRequest captures new announcement payloads.
type NewsCreateRequest struct {
	Title     string `json:"title" validate:"required,min=3"`
	Body      string `json:"body" validate:"required,min=3"`
	Published *bool  `json:"published"`
}

// NewsUpdateRequest captures partial announcement updates.
type NewsUpdateRequest struct {
	Title     *string `json:"title" validate:"omitempty,min=3"`
	Body      *string `json:"body" validate:"omitempty,min=3"`
	Published *bool   `json:"published"`
}

// NewsResponse serializes an announcement.
type NewsResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	AuthorID  uint      `json:"author_id"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewsListResponse wraps a paginated announcement listing.
type NewsListResponse struct {
	Items      []NewsResponse `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// NewNewsResponse converts an announcement model into a DTO.
func NewNewsResponse(post models.NewsPost) NewsResponse {
	return NewsResponse{
		ID:        post.ID,
		Title:     post.Title,
		Body:      post.Body,
		AuthorID:  post.AuthorID,
		Published: post.Published,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}
