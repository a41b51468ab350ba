package dto

import (
	"time"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/repository"
)

// DashboardResponse aggregates headline counts for the admin landing page.
type DashboardResponse struct {
	Counts      repository.EntityCounts `json:"counts"`
	GeneratedAt time.Time               `json:"generated_at"`
	CacheHit    bool                    `json:"cache_hit"`
}
