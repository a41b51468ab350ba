package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
)

// EntityCounts aggregates headline row counts for the admin dashboard.
type EntityCounts struct {
	Students     int64 `json:"students"`
	Teachers     int64 `json:"teachers"`
	News         int64 `json:"news"`
	ShopProducts int64 `json:"shop_products"`
	LibraryBooks int64 `json:"library_books"`
	AuditEvents  int64 `json:"audit_events"`
}

// StatsRepository aggregates counts across the main tables.
type StatsRepository interface {
	Counts(ctx context.Context) (EntityCounts, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository constructs the stats repository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Counts(ctx context.Context) (EntityCounts, error) {
	var counts EntityCounts

	targets := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.Student{}, &counts.Students},
		{&models.Teacher{}, &counts.Teachers},
		{&models.NewsPost{}, &counts.News},
		{&models.ShopProduct{}, &counts.ShopProducts},
		{&models.LibraryBook{}, &counts.LibraryBooks},
		{&models.AuditLog{}, &counts.AuditEvents},
	}

	for _, target := range targets {
		if err := r.db.WithContext(ctx).Model(target.model).Count(target.dest).Error; err != nil {
			return EntityCounts{}, err
		}
	}

	return counts, nil
}
