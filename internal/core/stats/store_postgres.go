// Copyright (c) 2026 Vireel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vireel/internal/platform/database/schema"
)

// # PostgreSQL Repository

// statsRepository implements the [StatsRepository] interface using pgx.
type statsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository constructs a PostgreSQL backed stats store.
func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &statsRepository{pool: pool}
}

func (repository *statsRepository) CountVideos(context context.Context) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", schema.CoreVideo.Table)

	var count int64
	if err := repository.pool.QueryRow(context, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres: failed to count videos: %w", err)
	}
	return count, nil
}

func (repository *statsRepository) CountUsers(context context.Context) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", schema.UsersAccount.Table)

	var count int64
	if err := repository.pool.QueryRow(context, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres: failed to count users: %w", err)
	}
	return count, nil
}

func (repository *statsRepository) SumVideoViews(context context.Context) (int64, error) {
	// COALESCE keeps an empty catalog at zero instead of NULL.
	query := fmt.Sprintf("SELECT COALESCE(SUM(%s), 0) FROM %s",
		schema.CoreVideo.ViewCount, schema.CoreVideo.Table)

	var total int64
	if err := repository.pool.QueryRow(context, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("postgres: failed to sum video views: %w", err)
	}
	return total, nil
}
