package models

import "time"

// LibraryBook is a catalog entry in the campus e-library. Only the
// metadata lives here; the texts themselves are shelved elsewhere.
type LibraryBook struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Author    string    `gorm:"size:255;not null" json:"author"`
	Category  string    `gorm:"size:64;index" json:"category"`
	Pages     int       `json:"pages"`
	Available bool      `gorm:"default:true" json:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the audited table name stable.
func (LibraryBook) TableName() string {
	return "library_books"
}
