package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/dto"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/repository"
)

const dashboardCacheKey = "narxoz:dashboard:counts"

// DashboardService aggregates headline counts for the admin landing page,
// cached in Redis to keep the dashboard cheap.
type DashboardService interface {
	Overview(ctx context.Context) (dto.DashboardResponse, error)
}

type dashboardService struct {
	stats  repository.StatsRepository
	cache  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewDashboardService constructs the dashboard service. cache may be nil;
// counts are then computed on every call.
func NewDashboardService(stats repository.StatsRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &dashboardService{
		stats:  stats,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) Overview(ctx context.Context) (dto.DashboardResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, dashboardCacheKey).Result(); err == nil && cached != "" {
			var response dto.DashboardResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.CacheHit = true
				return response, nil
			}
		}
	}

	counts, err := s.stats.Counts(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	response := dto.DashboardResponse{
		Counts:      counts,
		GeneratedAt: time.Now().UTC(),
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache dashboard counts")
			}
		}
	}

	return response, nil
}
