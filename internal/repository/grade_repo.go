package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
)

// GradeFilter narrows grade listings.
type GradeFilter struct {
	StudentID *uint
	TeacherID *uint
	Subject   string
	Semester  string
	Page      int
	PageSize  int
}

// GradeRepository manages grades.
type GradeRepository interface {
	Create(ctx context.Context, grade *models.Grade) error
	Update(ctx context.Context, grade *models.Grade) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Grade, error)
	List(ctx context.Context, filter GradeFilter) ([]models.Grade, int64, error)
	AverageScore(ctx context.Context, studentID uint, subject, semester string) (float64, error)
}

type gradeRepository struct {
	db *gorm.DB
}

// NewGradeRepository constructs the grade repository.
func NewGradeRepository(db *gorm.DB) GradeRepository {
	return &gradeRepository{db: db}
}

func (r *gradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	return r.db.WithContext(ctx).Create(grade).Error
}

func (r *gradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	return r.db.WithContext(ctx).Save(grade).Error
}

func (r *gradeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Grade{}, id).Error
}

func (r *gradeRepository) GetByID(ctx context.Context, id uint) (*models.Grade, error) {
	var grade models.Grade
	if err := r.db.WithContext(ctx).First(&grade, id).Error; err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *gradeRepository) List(ctx context.Context, filter GradeFilter) ([]models.Grade, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Grade{})

	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}

	if filter.TeacherID != nil {
		query = query.Where("teacher_id = ?", *filter.TeacherID)
	}

	if filter.Subject != "" {
		query = query.Where("subject = ?", filter.Subject)
	}

	if filter.Semester != "" {
		query = query.Where("semester = ?", filter.Semester)
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

	var grades []models.Grade
	if err := query.Order("created_at DESC").Find(&grades).Error; err != nil {
		return nil, 0, err
	}

	return grades, total, nil
}

// AverageScore computes the mean score across a student's grades. The
// optional subject and semester narrow the set the same way List does.
func (r *gradeRepository) AverageScore(ctx context.Context, studentID uint, subject, semester string) (float64, error) {
	query := r.db.WithContext(ctx).Model(&models.Grade{}).Where("student_id = ?", studentID)

	if subject != "" {
		query = query.Where("subject = ?", subject)
	}

	if semester != "" {
		query = query.Where("semester = ?", semester)
	}

	var average float64
	if err := query.Select("COALESCE(AVG(score), 0)").Scan(&average).Error; err != nil {
		return 0, err
	}

	return average, nil
}
