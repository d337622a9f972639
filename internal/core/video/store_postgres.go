// Copyright (c) 2026 Vireel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package video provides the PostgreSQL implementation for the catalog's data access.

It leans on Postgres features to keep the hot paths cheap:
  - Window Functions: COUNT(*) OVER() yields the total result count without a
    separate COUNT query.
  - Atomic Counters: View increments are applied inside the engine, so
    concurrent viewers never lose updates.
  - RETURNING: Partial updates hand back the stored row in the same round trip.
*/
package video

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vireel/internal/platform/apperr"
	"github.com/taibuivan/vireel/internal/platform/database/schema"
	"github.com/taibuivan/vireel/internal/platform/dberr"
)

// # PostgreSQL Repository

// videoRepository implements the [VideoRepository] interface using pgx.
type videoRepository struct {
	pool *pgxpool.Pool
}

// NewVideoRepository constructs a PostgreSQL backed video store.
func NewVideoRepository(pool *pgxpool.Pool) VideoRepository {
	return &videoRepository{pool: pool}
}

// scanVideo hydrates one entity from a row that selected Columns() in order.
func scanVideo(row pgx.Row) (*Video, error) {
	video := &Video{}
	err := row.Scan(
		&video.ID,
		&video.Slug,
		&video.Title,
		&video.Description,
		&video.SourceURL,
		&video.ThumbnailURL,
		&video.Duration,
		&video.ViewCount,
		&video.CanPlay,
		&video.CanShare,
		&video.CanDownload,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	return video, err
}

/*
List returns a page of videos and the total catalog size.

Description: Uses COUNT(*) OVER() so the total arrives with the page itself.
Ordering is newest-created first with the ID as a stable tiebreaker.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Video: Slice of hydrated video entities
  - int: Total catalog entry count
  - error: Database execution errors
*/
func (repository *videoRepository) List(context context.Context, limit, offset int) ([]*Video, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s DESC, %s DESC
		LIMIT $1 OFFSET $2`,
		strings.Join(schema.CoreVideo.Columns(), ", "),
		schema.CoreVideo.Table,
		schema.CoreVideo.CreatedAt,
		schema.CoreVideo.ID,
	)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list videos: %w", err)
	}
	defer rows.Close()

	var videos []*Video
	var totalCount int

	for rows.Next() {
		video := &Video{}
		err := rows.Scan(
			&video.ID,
			&video.Slug,
			&video.Title,
			&video.Description,
			&video.SourceURL,
			&video.ThumbnailURL,
			&video.Duration,
			&video.ViewCount,
			&video.CanPlay,
			&video.CanShare,
			&video.CanDownload,
			&video.CreatedAt,
			&video.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan video row: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: video rows iteration failed: %w", err)
	}

	return videos, totalCount, nil
}

/*
FindByID retrieves a single video by primary key.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Video: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *videoRepository) FindByID(context context.Context, id string) (*Video, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.CoreVideo.Columns(), ", "),
		schema.CoreVideo.Table,
		schema.CoreVideo.ID,
	)

	video, err := scanVideo(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("video")
		}
		return nil, fmt.Errorf("postgres: failed to find video by id: %w", err)
	}

	return video, nil
}

/*
FindBySlug retrieves a single video by its unique URL slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Video: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *videoRepository) FindBySlug(context context.Context, slug string) (*Video, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.CoreVideo.Columns(), ", "),
		schema.CoreVideo.Table,
		schema.CoreVideo.Slug,
	)

	video, err := scanVideo(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("video")
		}
		return nil, fmt.Errorf("postgres: failed to find video by slug: %w", err)
	}

	return video, nil
}

/*
Create persists a new catalog entry.

Description: The unique index on slug is the collision authority; the service
pre-resolves slugs but a race is still surfaced as Conflict here.

Parameters:
  - context: context.Context
  - video: *Video

Returns:
  - error: apperr.Conflict on slug collision, or execution errors
*/
func (repository *videoRepository) Create(context context.Context, video *Video) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		schema.CoreVideo.Table,
		schema.CoreVideo.ID, schema.CoreVideo.Slug, schema.CoreVideo.Title,
		schema.CoreVideo.Description, schema.CoreVideo.SourceURL, schema.CoreVideo.ThumbnailURL,
		schema.CoreVideo.Duration, schema.CoreVideo.ViewCount, schema.CoreVideo.CanPlay,
		schema.CoreVideo.CanShare, schema.CoreVideo.CanDownload,
		schema.CoreVideo.CreatedAt, schema.CoreVideo.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		video.ID,
		video.Slug,
		video.Title,
		video.Description,
		video.SourceURL,
		video.ThumbnailURL,
		video.Duration,
		video.ViewCount,
		video.CanPlay,
		video.CanShare,
		video.CanDownload,
		video.CreatedAt,
		video.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("A video with this slug already exists")
		}
		return fmt.Errorf("postgres: failed to create video: %w", err)
	}

	return nil
}

/*
Update applies a partial set of changes to an existing entry.

Description: Builds a PATCH-style SET block from the populated input fields
only, refreshes updatedat, and returns the stored row via RETURNING so the
caller never serves stale state. Boolean flags use pointer presence rather
than zero-value checks, so a flag can be explicitly switched off.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - *Video: Entity after the update
  - error: apperr.NotFound if the row does not exist, or execution errors
*/
func (repository *videoRepository) Update(context context.Context, id string, input UpdateInput) (*Video, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf("UPDATE %s SET %s = $1", schema.CoreVideo.Table, schema.CoreVideo.UpdatedAt))

	args := []any{time.Now()}
	argID := 2

	appendSet := func(column string, value any) {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if input.Title != nil {
		appendSet(schema.CoreVideo.Title, *input.Title)
	}
	if input.Description != nil {
		appendSet(schema.CoreVideo.Description, *input.Description)
	}
	if input.SourceURL != nil {
		appendSet(schema.CoreVideo.SourceURL, *input.SourceURL)
	}
	if input.ThumbnailURL != nil {
		appendSet(schema.CoreVideo.ThumbnailURL, *input.ThumbnailURL)
	}
	if input.Duration != nil {
		appendSet(schema.CoreVideo.Duration, *input.Duration)
	}
	if input.CanPlay != nil {
		appendSet(schema.CoreVideo.CanPlay, *input.CanPlay)
	}
	if input.CanShare != nil {
		appendSet(schema.CoreVideo.CanShare, *input.CanShare)
	}
	if input.CanDownload != nil {
		appendSet(schema.CoreVideo.CanDownload, *input.CanDownload)
	}

	queryBuilder.WriteString(fmt.Sprintf(" WHERE %s = $%d RETURNING %s",
		schema.CoreVideo.ID, argID,
		strings.Join(schema.CoreVideo.Columns(), ", "),
	))
	args = append(args, id)

	video, err := scanVideo(repository.pool.QueryRow(context, queryBuilder.String(), args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("video")
		}
		return nil, fmt.Errorf("postgres: failed to update video: %w", err)
	}

	return video, nil
}

/*
Delete permanently removes a catalog entry.

Description: Hard delete. RowsAffected distinguishes a removal from a miss, so
deleting twice reports NotFound the second time instead of succeeding silently.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound if missing, otherwise execution errors
*/
func (repository *videoRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.CoreVideo.Table, schema.CoreVideo.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete video: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("video")
	}

	return nil
}

/*
IncrementViewCount performs a thread-safe counter update.

Description: The addition is applied by the database engine in place, so two
concurrent viewers both land their increment; a fetch-then-write pair would
lose one of them.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound if the video does not exist, or execution errors
*/
func (repository *videoRepository) IncrementViewCount(context context.Context, id string) error {
	query := fmt.Sprintf("UPDATE %s SET %s = %s + 1 WHERE %s = $1",
		schema.CoreVideo.Table, schema.CoreVideo.ViewCount, schema.CoreVideo.ViewCount, schema.CoreVideo.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to increment view count: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("video")
	}

	return nil
}
