package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
)

// ScheduleFilter narrows timetable listings.
type ScheduleFilter struct {
	GroupName string
	TeacherID *uint
	Weekday   *int
}

// ScheduleRepository manages timetable slots.
type ScheduleRepository interface {
	Create(ctx context.Context, entry *models.ScheduleEntry) error
	Update(ctx context.Context, entry *models.ScheduleEntry) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.ScheduleEntry, error)
	List(ctx context.Context, filter ScheduleFilter) ([]models.ScheduleEntry, error)
}

type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository constructs the schedule repository.
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) Create(ctx context.Context, entry *models.ScheduleEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *scheduleRepository) Update(ctx context.Context, entry *models.ScheduleEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *scheduleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ScheduleEntry{}, id).Error
}

func (r *scheduleRepository) GetByID(ctx context.Context, id uint) (*models.ScheduleEntry, error) {
	var entry models.ScheduleEntry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *scheduleRepository) List(ctx context.Context, filter ScheduleFilter) ([]models.ScheduleEntry, error) {
	query := r.db.WithContext(ctx).Model(&models.ScheduleEntry{})

	if filter.GroupName != "" {
		query = query.Where("group_name = ?", filter.GroupName)
	}

	if filter.TeacherID != nil {
		query = query.Where("teacher_id = ?", *filter.TeacherID)
	}

	if filter.Weekday != nil {
		query = query.Where("weekday = ?", *filter.Weekday)
	}

	var entries []models.ScheduleEntry
	if err := query.Order("weekday ASC, start_time ASC").Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}
