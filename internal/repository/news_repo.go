package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
)

// NewsFilter narrows news listings.
type NewsFilter struct {
	AuthorID      *uint
	PublishedOnly bool
	Page          int
	PageSize      int
}

// NewsRepository manages announcements.
type NewsRepository interface {
	Create(ctx context.Context, post *models.NewsPost) error
	Update(ctx context.Context, post *models.NewsPost) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.NewsPost, error)
	List(ctx context.Context, filter NewsFilter) ([]models.NewsPost, int64, error)
}

type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository constructs the news repository.
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) Create(ctx context.Context, post *models.NewsPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *newsRepository) Update(ctx context.Context, post *models.NewsPost) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *newsRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.NewsPost{}, id).Error
}

func (r *newsRepository) GetByID(ctx context.Context, id uint) (*models.NewsPost, error) {
	var post models.NewsPost
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *newsRepository) List(ctx context.Context, filter NewsFilter) ([]models.NewsPost, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.NewsPost{})

	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}

	if filter.PublishedOnly {
		query = query.Where("published = ?", true)
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

	var posts []models.NewsPost
	if err := query.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}
