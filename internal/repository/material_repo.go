package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
)

// MaterialFilter narrows study-material listings.
type MaterialFilter struct {
	TeacherID *uint
	Subject   string
	Page      int
	PageSize  int
}

// MaterialRepository manages study-material metadata.
type MaterialRepository interface {
	Create(ctx context.Context, material *models.Material) error
	Update(ctx context.Context, material *models.Material) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Material, error)
	List(ctx context.Context, filter MaterialFilter) ([]models.Material, int64, error)
}

type materialRepository struct {
	db *gorm.DB
}

// NewMaterialRepository constructs the material repository.
func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) Create(ctx context.Context, material *models.Material) error {
	return r.db.WithContext(ctx).Create(material).Error
}

func (r *materialRepository) Update(ctx context.Context, material *models.Material) error {
	return r.db.WithContext(ctx).Save(material).Error
}

func (r *materialRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Material{}, id).Error
}

func (r *materialRepository) GetByID(ctx context.Context, id uint) (*models.Material, error) {
	var material models.Material
	if err := r.db.WithContext(ctx).First(&material, id).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepository) List(ctx context.Context, filter MaterialFilter) ([]models.Material, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Material{})

	if filter.TeacherID != nil {
		query = query.Where("teacher_id = ?", *filter.TeacherID)
	}

	if filter.Subject != "" {
		query = query.Where("subject = ?", filter.Subject)
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

	var materials []models.Material
	if err := query.Order("created_at DESC").Find(&materials).Error; err != nil {
		return nil, 0, err
	}

	return materials, total, nil
}
