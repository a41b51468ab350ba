package dto

import (
	"time"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
)

// ShopProductListRequest defines filters for listing catalog items.
type ShopProductListRequest struct {
	Page     int
	PageSize int
	Search   string
	InStock  bool
}

// ShopProductCreateRequest captures new catalog item payloads.
type ShopProductCreateRequest struct {
	Name        string  `json:"name" validate:"required,min=2"`
	Description string  `json:"description" validate:"omitempty,max=2048"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
}

// ShopProductUpdateRequest captures partial catalog updates.
type ShopProductUpdateRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=2"`
	Description *string  `json:"description" validate:"omitempty,max=2048"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,url"`
}

// ShopProductResponse serializes a catalog item.
type ShopProductResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ShopProductListResponse wraps a paginated catalog listing.
type ShopProductListResponse struct {
	Items      []ShopProductResponse `json:"items"`
	Pagination PaginationMeta        `json:"pagination"`
}

// NewShopProductResponse converts a catalog model into a DTO.
func NewShopProductResponse(product models.ShopProduct) ShopProductResponse {
	return ShopProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		ImageURL:    product.ImageURL,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
