package service

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/dto"
)

// auditMutation dispatches a mutation event and absorbs dispatch failures.
// The business write already happened; a busy audit queue must not undo it.
func auditMutation(ctx context.Context, recorder AuditRecorder, logger zerolog.Logger, actor AuditActor, kind, table string, recordID *uint, before, after interface{}, meta RequestMeta) {
	if err := recorder.RecordMutation(ctx, actor, kind, table, recordID, before, after, meta); err != nil {
		logger.Warn().Err(err).
			Str("table", table).
			Str("kind", kind).
			Msg("mutation event not recorded")
	}
}

func paginationMeta(page, pageSize int, total int64) dto.PaginationMeta {
	meta := dto.PaginationMeta{
		Page:       maxInt(page, 1),
		PageSize:   pageSize,
		TotalItems: total,
	}
	if pageSize > 0 {
		meta.TotalPages = int(math.Ceil(float64(total) / float64(pageSize)))
	} else {
		meta.TotalPages = 1
	}
	return meta
}

func clampPageSize(pageSize, fallback, ceiling int) int {
	if pageSize <= 0 {
		return fallback
	}
	if pageSize > ceiling {
		return ceiling
	}
	return pageSize
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
