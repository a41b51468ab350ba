package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/dto"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/repository"
)

type countingAuditRepo struct {
	memoryAuditRepo
	listCalls  int
	lastFilter repository.AuditLogFilter
	listErr    error
}

func (c *countingAuditRepo) List(ctx context.Context, filter repository.AuditLogFilter) ([]models.AuditLog, int64, error) {
	c.listCalls++
	c.lastFilter = filter
	if c.listErr != nil {
		return nil, 0, c.listErr
	}
	return c.memoryAuditRepo.List(ctx, filter)
}

func TestAuditQueryServiceRejectsInvalidPaginationBeforeStore(t *testing.T) {
	repo := &countingAuditRepo{}
	svc := NewAuditQueryService(repo, zerolog.Nop())

	cases := []dto.AuditLogQueryRequest{
		{Page: 1, PageSize: 0},
		{Page: 0, PageSize: 20},
		{Page: 1, PageSize: -5},
	}
	for _, req := range cases {
		_, err := svc.Query(context.Background(), req)
		require.ErrorIs(t, err, ErrInvalidPagination)
	}
	require.Zero(t, repo.listCalls, "invalid input must be rejected without touching the store")
}

func TestAuditQueryServiceRejectsUnknownAction(t *testing.T) {
	repo := &countingAuditRepo{}
	svc := NewAuditQueryService(repo, zerolog.Nop())

	_, err := svc.Query(context.Background(), dto.AuditLogQueryRequest{Page: 1, PageSize: 20, Action: "drop_table"})
	require.ErrorIs(t, err, ErrInvalidAction)
	require.Zero(t, repo.listCalls)
}

func TestAuditQueryServiceRejectsInvertedDateRange(t *testing.T) {
	repo := &countingAuditRepo{}
	svc := NewAuditQueryService(repo, zerolog.Nop())

	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)

	_, err := svc.Query(context.Background(), dto.AuditLogQueryRequest{Page: 1, PageSize: 20, From: &from, To: &to})
	require.ErrorIs(t, err, ErrInvalidDateRange)
	require.Zero(t, repo.listCalls)
}

func TestAuditQueryServiceCapsPageSizeAndComputesOffset(t *testing.T) {
	repo := &countingAuditRepo{}
	svc := NewAuditQueryService(repo, zerolog.Nop())

	response, err := svc.Query(context.Background(), dto.AuditLogQueryRequest{Page: 3, PageSize: 1000})
	require.NoError(t, err)
	require.Equal(t, maxAuditPageSize, repo.lastFilter.Limit)
	require.Equal(t, 2*maxAuditPageSize, repo.lastFilter.Offset)
	require.Equal(t, maxAuditPageSize, response.Pagination.PageSize)
}

func TestAuditQueryServiceNormalizesActionCase(t *testing.T) {
	repo := &countingAuditRepo{}
	svc := NewAuditQueryService(repo, zerolog.Nop())

	_, err := svc.Query(context.Background(), dto.AuditLogQueryRequest{Page: 1, PageSize: 20, Action: " Access_Denied "})
	require.NoError(t, err)
	require.Equal(t, models.AuditActionAccessDenied, repo.lastFilter.Action)
}

func TestAuditQueryServiceBuildsPaginatedResponse(t *testing.T) {
	repo := &countingAuditRepo{}
	table := "grades"
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(context.Background(), &models.AuditLog{
			ActorEmail: "admin@narxoz.kz",
			ActorRole:  models.RoleAdmin,
			Action:     models.AuditActionUpdate,
			Table:      &table,
		}))
	}
	svc := NewAuditQueryService(repo, zerolog.Nop())

	response, err := svc.Query(context.Background(), dto.AuditLogQueryRequest{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, response.Items, 3, "fake repo ignores limits; the mapping itself is under test")
	require.Equal(t, int64(3), response.Pagination.TotalItems)
	require.Equal(t, 2, response.Pagination.PageSize)
	require.Equal(t, 2, response.Pagination.TotalPages)
	require.Equal(t, "grades", *response.Items[0].TableName)
}

func TestAuditQueryServicePropagatesStoreFailure(t *testing.T) {
	storeErr := errors.New("connection reset")
	repo := &countingAuditRepo{listErr: storeErr}
	svc := NewAuditQueryService(repo, zerolog.Nop())

	_, err := svc.Query(context.Background(), dto.AuditLogQueryRequest{Page: 1, PageSize: 20})
	require.ErrorIs(t, err, storeErr)
}
