package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
)

// LibraryBookFilter narrows catalog listings. Search matches title or
// author, case-insensitive.
type LibraryBookFilter struct {
	Search        string
	Category      string
	AvailableOnly bool
	Page          int
	PageSize      int
}

// LibraryBookRepository manages the e-library catalog.
type LibraryBookRepository interface {
	Create(ctx context.Context, book *models.LibraryBook) error
	Update(ctx context.Context, book *models.LibraryBook) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.LibraryBook, error)
	List(ctx context.Context, filter LibraryBookFilter) ([]models.LibraryBook, int64, error)
}

type libraryBookRepository struct {
	db *gorm.DB
}

// NewLibraryBookRepository constructs the library book repository.
func NewLibraryBookRepository(db *gorm.DB) LibraryBookRepository {
	return &libraryBookRepository{db: db}
}

func (r *libraryBookRepository) Create(ctx context.Context, book *models.LibraryBook) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *libraryBookRepository) Update(ctx context.Context, book *models.LibraryBook) error {
	return r.db.WithContext(ctx).Save(book).Error
}

func (r *libraryBookRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.LibraryBook{}, id).Error
}

func (r *libraryBookRepository) GetByID(ctx context.Context, id uint) (*models.LibraryBook, error) {
	var book models.LibraryBook
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *libraryBookRepository) List(ctx context.Context, filter LibraryBookFilter) ([]models.LibraryBook, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.LibraryBook{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ?", pattern, pattern)
	}

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	if filter.AvailableOnly {
		query = query.Where("available = ?", true)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var books []models.LibraryBook
	if err := query.Order("title ASC").Find(&books).Error; err != nil {
		return nil, 0, err
	}

	return books, total, nil
}
