package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/repository"
)

type statsRepoStub struct {
	counts repository.EntityCounts
	calls  int
}

func (s *statsRepoStub) Counts(ctx context.Context) (repository.EntityCounts, error) {
	s.calls++
	return s.counts, nil
}

func TestDashboardServiceCachesOverview(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	stats := &statsRepoStub{counts: repository.EntityCounts{Students: 120, Teachers: 14, AuditEvents: 900}}

	svc := NewDashboardService(stats, client, time.Minute, zerolog.Nop())

	first, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.False(t, first.CacheHit)
	require.Equal(t, int64(120), first.Counts.Students)

	second, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Equal(t, first.Counts, second.Counts)
	require.Equal(t, 1, stats.calls, "cached overview must not hit the database")

	server.FastForward(2 * time.Minute)

	third, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.False(t, third.CacheHit, "expired cache entries are recomputed")
	require.Equal(t, 2, stats.calls)
}

func TestDashboardServiceWorksWithoutCache(t *testing.T) {
	stats := &statsRepoStub{counts: repository.EntityCounts{Students: 3}}
	svc := NewDashboardService(stats, nil, time.Minute, zerolog.Nop())

	first, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.False(t, first.CacheHit)

	_, err = svc.Overview(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, stats.calls)
}
