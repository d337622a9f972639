// Copyright (c) 2026 Vireel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"fmt"
	"log/slog"
)

// # Service Layer

// Service assembles the admin dashboard aggregates.
type Service struct {
	statsRepo StatsRepository
	logger    *slog.Logger
}

// NewService constructs a new stats [Service].
func NewService(statsRepo StatsRepository, logger *slog.Logger) *Service {
	return &Service{
		statsRepo: statsRepo,
		logger:    logger,
	}
}

/*
GetOverview gathers the three dashboard aggregates.

Description: The figures come from separate queries, so under concurrent
writes they describe slightly different instants. The dashboard tolerates
that; a transaction here would buy consistency nobody reads.

Parameters:
  - context: context.Context

Returns:
  - *Overview: Aggregate snapshot
  - error: Execution errors from any of the underlying queries
*/
func (service *Service) GetOverview(context context.Context) (*Overview, error) {
	totalVideos, err := service.statsRepo.CountVideos(context)
	if err != nil {
		return nil, fmt.Errorf("stats_service_count_videos_failed: %w", err)
	}

	totalUsers, err := service.statsRepo.CountUsers(context)
	if err != nil {
		return nil, fmt.Errorf("stats_service_count_users_failed: %w", err)
	}

	totalViews, err := service.statsRepo.SumVideoViews(context)
	if err != nil {
		return nil, fmt.Errorf("stats_service_sum_views_failed: %w", err)
	}

	return &Overview{
		TotalVideos: totalVideos,
		TotalUsers:  totalUsers,
		TotalViews:  totalViews,
	}, nil
}
