// Copyright (c) 2026 Vireel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/vireel/internal/platform/validate"
	"github.com/taibuivan/vireel/pkg/pointer"
	"github.com/taibuivan/vireel/pkg/slug"
	"github.com/taibuivan/vireel/pkg/uuid"
)

// # Service Layer

// Service orchestrates the business logic for the video catalog.
// It acts as the primary entry point for browsing and for admin management.
type Service struct {
	videoRepo VideoRepository
	logger    *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(videoRepo VideoRepository, logger *slog.Logger) *Service {
	return &Service{
		videoRepo: videoRepo,
		logger:    logger,
	}
}

// # Catalog Lookups

/*
ListVideos retrieves a paginated slice of the catalog, newest first.

Parameters:
  - context: context.Context
  - limit: int (Max records to return)
  - offset: int (Pagination cursor)

Returns:
  - []*Video: Page of catalog entries
  - int: Total count of entries (for pagination metadata)
  - error: Repository level errors
*/
func (service *Service) ListVideos(context context.Context, limit, offset int) ([]*Video, int, error) {
	return service.videoRepo.List(context, limit, offset)
}

/*
GetVideo fetches a single catalog entry by UUID or SEO slug, with no side
effects. This is the admin-facing read path; viewing stats are untouched.

Parameters:
  - context: context.Context
  - identifier: string (UUID or Slug)

Returns:
  - *Video: The hydrated domain entity
  - error: apperr.NotFound if no match is found
*/
func (service *Service) GetVideo(context context.Context, identifier string) (*Video, error) {
	if isUUID(identifier) {
		return service.videoRepo.FindByID(context, identifier)
	}
	return service.videoRepo.FindBySlug(context, identifier)
}

/*
GetDetail fetches a single catalog entry for an end-user detail page and
records the view.

Description: The view is counted before the entity is read back, so the
returned viewCount already includes this request. The increment is atomic in
storage; concurrent detail fetches for the same title all land their view.

Parameters:
  - context: context.Context
  - identifier: string (UUID or Slug)

Returns:
  - *Video: The entity as stored after the view was counted
  - error: apperr.NotFound if no match is found
*/
func (service *Service) GetDetail(context context.Context, identifier string) (*Video, error) {

	// Slug identifiers need a resolution pass to obtain the primary key.
	id := identifier
	if !isUUID(identifier) {
		resolved, err := service.videoRepo.FindBySlug(context, identifier)
		if err != nil {
			return nil, err
		}
		id = resolved.ID
	}

	if err := service.RecordView(context, id); err != nil {
		return nil, err
	}

	return service.videoRepo.FindByID(context, id)
}

/*
RecordView counts one view for a video.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: apperr.NotFound if the video does not exist
*/
func (service *Service) RecordView(context context.Context, id string) error {
	return service.videoRepo.IncrementViewCount(context, id)
}

/*
ResolveDownload returns the source locator for a direct-download redirect.

Description: The capability gate runs first and is role-independent; a title
with downloads disabled refuses everyone, admins included.

Parameters:
  - context: context.Context
  - identifier: string (UUID or Slug)

Returns:
  - string: The source locator to redirect to
  - error: apperr.NotFound or DOWNLOAD_NOT_PERMITTED
*/
func (service *Service) ResolveDownload(context context.Context, identifier string) (string, error) {
	video, err := service.GetVideo(context, identifier)
	if err != nil {
		return "", err
	}

	if err := AuthorizeDownload(video); err != nil {
		return "", err
	}

	return video.SourceURL, nil
}

// # Catalog Management

// CreateInput holds the admin-supplied attributes for a new catalog entry.
// Absent capability flags fall back to the catalog defaults; viewCount is not
// accepted at all and always starts at zero.
type CreateInput struct {
	Title        string
	Description  string
	SourceURL    string
	ThumbnailURL string
	Duration     string
	CanPlay      *bool
	CanShare     *bool
	CanDownload  *bool
}

/*
CreateVideo initialises a new catalog entry.

Description: Validates the required metadata, generates a stable UUID v7
identity and an SEO-friendly slug, applies capability defaults
(play and share on, download off), and persists via the repository.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Video: The persisted entity
  - error: Validation or persistence errors
*/
func (service *Service) CreateVideo(context context.Context, input CreateInput) (*Video, error) {

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 500)
	validator.Required(FieldSourceURL, input.SourceURL).URL(FieldSourceURL, input.SourceURL)

	if input.ThumbnailURL != "" {
		validator.URL(FieldThumbnailURL, input.ThumbnailURL)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := time.Now()
	video := &Video{
		ID:           uuid.New(),
		Slug:         slug.From(input.Title),
		Title:        input.Title,
		Description:  input.Description,
		SourceURL:    input.SourceURL,
		ThumbnailURL: input.ThumbnailURL,
		Duration:     input.Duration,
		CanPlay:      pointer.Fallback(input.CanPlay, true),
		CanShare:     pointer.Fallback(input.CanShare, true),
		CanDownload:  pointer.Fallback(input.CanDownload, false),
		ViewCount:    0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := service.videoRepo.Create(context, video); err != nil {
		return nil, err
	}

	service.logger.Info("video_created",
		slog.String("video_id", video.ID),
		slog.String("title", video.Title),
	)

	return video, nil
}

/*
UpdateVideo applies modifications to an existing catalog entry.

Description: Supports partial updates through pointer presence, so capability
flags can be explicitly switched off. viewCount and createdAt are not part of
the input shape and cannot be modified through this path.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - input: UpdateInput

Returns:
  - *Video: The entity after the update
  - error: Validation, apperr.NotFound, or persistence errors
*/
func (service *Service) UpdateVideo(context context.Context, id string, input UpdateInput) (*Video, error) {

	// Integrity validation for supplied fields only
	validator := &validate.Validator{}

	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, 500)
	}
	if input.SourceURL != nil {
		validator.Required(FieldSourceURL, *input.SourceURL).URL(FieldSourceURL, *input.SourceURL)
	}
	if input.ThumbnailURL != nil && *input.ThumbnailURL != "" {
		validator.URL(FieldThumbnailURL, *input.ThumbnailURL)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	video, err := service.videoRepo.Update(context, id, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("video_updated", slog.String("video_id", id))

	return video, nil
}

/*
DeleteVideo permanently removes a catalog entry.

Description: Hard delete with idempotent-failure semantics: the second delete
for the same id reports NotFound rather than succeeding or crashing.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: apperr.NotFound or persistence errors
*/
func (service *Service) DeleteVideo(context context.Context, id string) error {
	if err := service.videoRepo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("video_deleted", slog.String("video_id", id))

	return nil
}

// # Internal Helpers

// isUUID returns true if the string matches the standard UUID length.
func isUUID(s string) bool {
	return len(s) == 36
}
