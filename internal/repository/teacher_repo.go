package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
)

// TeacherFilter narrows teacher listings.
type TeacherFilter struct {
	Search     string
	Department string
	Page       int
	PageSize   int
}

// TeacherRepository manages teacher profiles.
type TeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Teacher, error)
	List(ctx context.Context, filter TeacherFilter) ([]models.Teacher, int64, error)
}

type teacherRepository struct {
	db *gorm.DB
}

// NewTeacherRepository constructs the teacher repository.
func NewTeacherRepository(db *gorm.DB) TeacherRepository {
	return &teacherRepository{db: db}
}

func (r *teacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	return r.db.WithContext(ctx).Create(teacher).Error
}

func (r *teacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	return r.db.WithContext(ctx).Save(teacher).Error
}

func (r *teacherRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Teacher{}, id).Error
}

func (r *teacherRepository) GetByID(ctx context.Context, id uint) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := r.db.WithContext(ctx).First(&teacher, id).Error; err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepository) List(ctx context.Context, filter TeacherFilter) ([]models.Teacher, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Teacher{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
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

	var teachers []models.Teacher
	if err := query.Order("created_at DESC").Find(&teachers).Error; err != nil {
		return nil, 0, err
	}

	return teachers, total, nil
}
