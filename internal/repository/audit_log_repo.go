package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
)

// AuditLogFilter narrows audit log queries. All predicates are combined
// with AND; zero values leave the corresponding predicate off.
type AuditLogFilter struct {
	ActorID   *uint
	EmailLike string
	Action    string
	TableName string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// AuditLogRepository persists the append-only audit trail. There is no
// update or delete on purpose.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]models.AuditLog, int64, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository constructs the audit log repository.
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditLogRepository) List(ctx context.Context, filter AuditLogFilter) ([]models.AuditLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if filter.ActorID != nil {
		query = query.Where("actor_id = ?", *filter.ActorID)
	}

	if email := strings.TrimSpace(filter.EmailLike); email != "" {
		query = query.Where("LOWER(actor_email) LIKE ?", "%"+strings.ToLower(email)+"%")
	}

	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}

	if filter.TableName != "" {
		query = query.Where("table_name = ?", filter.TableName)
	}

	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}

	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Offset(filter.Offset).Limit(filter.Limit)
	}

	// Ties on created_at fall back to insertion order so pagination stays
	// stable when several events share a timestamp.
	var entries []models.AuditLog
	if err := query.Order("created_at DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
