package models

import "time"

// ShopProduct is a merchandise item in the college shop. Checkout happens
// through an external messaging link, so the catalog only stores display
// data and stock.
type ShopProduct struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"size:2048" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Stock       int       `gorm:"default:0" json:"stock"`
	ImageURL    string    `gorm:"size:1024" json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName keeps the audited table name stable.
func (ShopProduct) TableName() string {
	return "shop_products"
}
