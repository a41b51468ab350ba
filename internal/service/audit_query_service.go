package service

import (
	"context"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/dto"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/repository"
)

const maxAuditPageSize = 200

// AuditQueryService serves the admin audit viewer: filtered, paginated
// reads over the audit trail plus the total match count.
type AuditQueryService interface {
	Query(ctx context.Context, req dto.AuditLogQueryRequest) (dto.AuditLogListResponse, error)
}

type auditQueryService struct {
	repo   repository.AuditLogRepository
	logger zerolog.Logger
}

// NewAuditQueryService constructs the audit query service.
func NewAuditQueryService(repo repository.AuditLogRepository, logger zerolog.Logger) AuditQueryService {
	return &auditQueryService{
		repo:   repo,
		logger: logger.With().Str("component", "audit_query_service").Logger(),
	}
}

func (s *auditQueryService) Query(ctx context.Context, req dto.AuditLogQueryRequest) (dto.AuditLogListResponse, error) {
	// Invalid input is rejected before the store is touched: a zero or
	// negative page size indicates a caller bug, not an empty page.
	if req.Page <= 0 || req.PageSize <= 0 {
		return dto.AuditLogListResponse{}, ErrInvalidPagination
	}

	pageSize := req.PageSize
	if pageSize > maxAuditPageSize {
		pageSize = maxAuditPageSize
	}

	action := strings.ToLower(strings.TrimSpace(req.Action))
	if action != "" && !models.IsAuditAction(action) {
		return dto.AuditLogListResponse{}, ErrInvalidAction
	}

	if req.From != nil && req.To != nil && req.From.After(*req.To) {
		return dto.AuditLogListResponse{}, ErrInvalidDateRange
	}

	filter := repository.AuditLogFilter{
		ActorID:   req.ActorID,
		EmailLike: strings.TrimSpace(req.Email),
		Action:    action,
		TableName: strings.TrimSpace(req.TableName),
		From:      req.From,
		To:        req.To,
		Limit:     pageSize,
		Offset:    (req.Page - 1) * pageSize,
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("audit query failed")
		return dto.AuditLogListResponse{}, err
	}

	items := make([]dto.AuditLogResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewAuditLogResponse(entry))
	}

	return dto.AuditLogListResponse{
		Items: items,
		Pagination: dto.PaginationMeta{
			Page:       req.Page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
		},
	}, nil
}
