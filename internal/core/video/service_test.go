// Copyright (c) 2026 Vireel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vireel/internal/core/video"
	"github.com/taibuivan/vireel/internal/platform/apperr"
	"github.com/taibuivan/vireel/pkg/pointer"
)

// # Test Doubles

// memoryVideoRepository is an in-memory VideoRepository. The increment path
// mutates under the same lock the real store delegates to the SQL engine, so
// the concurrency property is exercised honestly.
type memoryVideoRepository struct {
	mu     sync.Mutex
	videos map[string]*video.Video
}

func newMemoryVideoRepository() *memoryVideoRepository {
	return &memoryVideoRepository{videos: make(map[string]*video.Video)}
}

func (repo *memoryVideoRepository) List(_ context.Context, limit, offset int) ([]*video.Video, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	all := make([]*video.Video, 0, len(repo.videos))
	for _, entity := range repo.videos {
		copied := *entity
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (repo *memoryVideoRepository) FindByID(_ context.Context, id string) (*video.Video, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	entity, exists := repo.videos[id]
	if !exists {
		return nil, apperr.NotFound("video")
	}
	copied := *entity
	return &copied, nil
}

func (repo *memoryVideoRepository) FindBySlug(_ context.Context, slug string) (*video.Video, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, entity := range repo.videos {
		if entity.Slug == slug {
			copied := *entity
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("video")
}

func (repo *memoryVideoRepository) Create(_ context.Context, entity *video.Video) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, existing := range repo.videos {
		if existing.Slug == entity.Slug {
			return apperr.Conflict("A video with this slug already exists")
		}
	}
	copied := *entity
	repo.videos[copied.ID] = &copied
	return nil
}

func (repo *memoryVideoRepository) Update(_ context.Context, id string, input video.UpdateInput) (*video.Video, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	entity, exists := repo.videos[id]
	if !exists {
		return nil, apperr.NotFound("video")
	}

	if input.Title != nil {
		entity.Title = *input.Title
	}
	if input.Description != nil {
		entity.Description = *input.Description
	}
	if input.SourceURL != nil {
		entity.SourceURL = *input.SourceURL
	}
	if input.ThumbnailURL != nil {
		entity.ThumbnailURL = *input.ThumbnailURL
	}
	if input.Duration != nil {
		entity.Duration = *input.Duration
	}
	if input.CanPlay != nil {
		entity.CanPlay = *input.CanPlay
	}
	if input.CanShare != nil {
		entity.CanShare = *input.CanShare
	}
	if input.CanDownload != nil {
		entity.CanDownload = *input.CanDownload
	}
	entity.UpdatedAt = time.Now()

	copied := *entity
	return &copied, nil
}

func (repo *memoryVideoRepository) Delete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.videos[id]; !exists {
		return apperr.NotFound("video")
	}
	delete(repo.videos, id)
	return nil
}

func (repo *memoryVideoRepository) IncrementViewCount(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	entity, exists := repo.videos[id]
	if !exists {
		return apperr.NotFound("video")
	}
	entity.ViewCount++
	return nil
}

func newTestService() (*video.Service, *memoryVideoRepository) {
	repo := newMemoryVideoRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return video.NewService(repo, logger), repo
}

// # Tests

/*
TestCreateVideo_Defaults verifies that a new entry gets play and share
enabled, download disabled, a zero view counter, and a slug from its title.
*/
func TestCreateVideo_Defaults(t *testing.T) {
	service, _ := newTestService()

	created, err := service.CreateVideo(context.Background(), video.CreateInput{
		Title:     "Deep Sea Documentary",
		SourceURL: "https://cdn.vireel.app/assets/deep-sea.mp4",
	})

	require.NoError(t, err)
	assert.True(t, created.CanPlay)
	assert.True(t, created.CanShare)
	assert.False(t, created.CanDownload)
	assert.Equal(t, int64(0), created.ViewCount)
	assert.Equal(t, "deep-sea-documentary", created.Slug)
	assert.NotEmpty(t, created.ID)
}

/*
TestCreateVideo_Validation verifies that a missing title or source locator is
rejected before anything touches storage.
*/
func TestCreateVideo_Validation(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	_, err := service.CreateVideo(ctx, video.CreateInput{SourceURL: "https://cdn.vireel.app/a.mp4"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = service.CreateVideo(ctx, video.CreateInput{Title: "No Source"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	assert.Empty(t, repo.videos, "failed creations must not persist anything")
}

/*
TestRecordView_ConcurrentIncrements fires 50 concurrent views at one title
and expects exactly 50 to land.
*/
func TestRecordView_ConcurrentIncrements(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.CreateVideo(ctx, video.CreateInput{
		Title:     "Concurrency Stress",
		SourceURL: "https://cdn.vireel.app/assets/stress.mp4",
	})
	require.NoError(t, err)

	const viewers = 50
	var wg sync.WaitGroup
	wg.Add(viewers)
	for i := 0; i < viewers; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, service.RecordView(ctx, created.ID))
		}()
	}
	wg.Wait()

	stored, err := service.GetVideo(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(viewers), stored.ViewCount)
}

/*
TestGetDetail_CountsTheView verifies the detail fetch increments before it
reads, so the caller sees their own view included.
*/
func TestGetDetail_CountsTheView(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.CreateVideo(ctx, video.CreateInput{
		Title:     "First Watch",
		SourceURL: "https://cdn.vireel.app/assets/first.mp4",
	})
	require.NoError(t, err)

	detail, err := service.GetDetail(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.ViewCount)

	// Slug lookup counts too.
	detail, err = service.GetDetail(ctx, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.ViewCount)
}

/*
TestUpdateVideo_PartialChanges verifies only supplied fields change, others
retain their stored values, and a flag can be explicitly switched off.
*/
func TestUpdateVideo_PartialChanges(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.CreateVideo(ctx, video.CreateInput{
		Title:       "Original Title",
		Description: "Original description",
		SourceURL:   "https://cdn.vireel.app/assets/original.mp4",
	})
	require.NoError(t, err)
	require.NoError(t, service.RecordView(ctx, created.ID))

	updated, err := service.UpdateVideo(ctx, created.ID, video.UpdateInput{
		Title:    pointer.To("Renamed Title"),
		CanShare: pointer.To(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed Title", updated.Title)
	assert.False(t, updated.CanShare, "explicit false must stick")
	assert.Equal(t, "Original description", updated.Description)
	assert.Equal(t, created.SourceURL, updated.SourceURL)
	assert.True(t, updated.CanPlay)
	assert.Equal(t, int64(1), updated.ViewCount, "view counter is immutable through updates")
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))
}

/*
TestDeleteVideo_IdempotentFailure verifies the hard-delete semantics: the
first call removes the row, the second reports NotFound.
*/
func TestDeleteVideo_IdempotentFailure(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.CreateVideo(ctx, video.CreateInput{
		Title:     "Short Lived",
		SourceURL: "https://cdn.vireel.app/assets/short.mp4",
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteVideo(ctx, created.ID))

	err = service.DeleteVideo(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	_, err = service.GetVideo(ctx, created.ID)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestResolveDownload_GateAndLocator verifies the download resolution returns
the locator only when the flag allows it.
*/
func TestResolveDownload_GateAndLocator(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	locked, err := service.CreateVideo(ctx, video.CreateInput{
		Title:     "Locked Down",
		SourceURL: "https://cdn.vireel.app/assets/locked.mp4",
	})
	require.NoError(t, err)

	_, err = service.ResolveDownload(ctx, locked.ID)
	require.Error(t, err)
	assert.Equal(t, "DOWNLOAD_NOT_PERMITTED", apperr.As(err).Code)

	open, err := service.CreateVideo(ctx, video.CreateInput{
		Title:       "Open Access",
		SourceURL:   "https://cdn.vireel.app/assets/open.mp4",
		CanDownload: pointer.To(true),
	})
	require.NoError(t, err)

	location, err := service.ResolveDownload(ctx, open.ID)
	require.NoError(t, err)
	assert.Equal(t, open.SourceURL, location)
}
