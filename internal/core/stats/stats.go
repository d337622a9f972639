// Copyright (c) 2026 Vireel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package stats computes aggregate usage figures for the admin dashboard.

Figures are real aggregates computed at request time, not cached snapshots:
the dashboard is low-traffic and correctness beats staleness here.
*/
package stats

import "context"

// Overview is the aggregate snapshot served to administrators.
type Overview struct {
	TotalVideos int64 `json:"total_videos"`
	TotalUsers  int64 `json:"total_users"`
	TotalViews  int64 `json:"total_views"`
}

// # Repository Contract

// StatsRepository defines the aggregate queries behind the dashboard.
type StatsRepository interface {
	/*
		CountVideos returns the number of catalog entries.

		Parameters:
		  - context: Request-scoped context for cancellation.

		Returns:
		  - int64: Total entry count.
		  - error: Execution errors.
	*/
	CountVideos(context context.Context) (int64, error)

	/*
		CountUsers returns the number of registered accounts.

		Parameters:
		  - context: Request-scoped context for cancellation.

		Returns:
		  - int64: Total account count.
		  - error: Execution errors.
	*/
	CountUsers(context context.Context) (int64, error)

	/*
		SumVideoViews returns the sum of every video's view counter. An empty
		catalog sums to zero, not NULL.

		Parameters:
		  - context: Request-scoped context for cancellation.

		Returns:
		  - int64: Aggregate view count.
		  - error: Execution errors.
	*/
	SumVideoViews(context context.Context) (int64, error)
}
