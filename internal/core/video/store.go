// Copyright (c) 2026 Vireel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video

import "context"

// # Repository Contracts

// UpdateInput is the partial-update shape for a catalog entry. Nil means
// "keep the stored value". viewcount and createdat are deliberately absent;
// they are immutable through this path.
type UpdateInput struct {
	Title        *string
	Description  *string
	SourceURL    *string
	ThumbnailURL *string
	Duration     *string
	CanPlay      *bool
	CanShare     *bool
	CanDownload  *bool
}

// IsEmpty reports whether the input carries no changes at all.
func (input UpdateInput) IsEmpty() bool {
	return input.Title == nil &&
		input.Description == nil &&
		input.SourceURL == nil &&
		input.ThumbnailURL == nil &&
		input.Duration == nil &&
		input.CanPlay == nil &&
		input.CanShare == nil &&
		input.CanDownload == nil
}

// VideoRepository defines persistence operations for the video catalog.
type VideoRepository interface {
	/*
		List returns a page of videos ordered newest-created first, along with
		the total catalog size.

		Parameters:
		  - context: Request-scoped context for cancellation.
		  - limit: Max records to return.
		  - offset: Pagination cursor.

		Returns:
		  - []*Video: Slice of hydrated video entities.
		  - int: Total count of catalog entries (for pagination metadata).
		  - error: Database execution errors.
	*/
	List(context context.Context, limit, offset int) ([]*Video, int, error)

	/*
		FindByID retrieves a single video by its unique identifier.

		Parameters:
		  - context: Request-scoped context for cancellation.
		  - id: The video identifier.

		Returns:
		  - *Video: The hydrated entity.
		  - error: apperr.NotFound when the identifier is unknown.
	*/
	FindByID(context context.Context, id string) (*Video, error)

	/*
		FindBySlug retrieves a single video by its URL slug.

		Parameters:
		  - context: Request-scoped context for cancellation.
		  - slug: The URL-safe identifier.

		Returns:
		  - *Video: The hydrated entity.
		  - error: apperr.NotFound when the slug is unknown.
	*/
	FindBySlug(context context.Context, slug string) (*Video, error)

	/*
		Create persists a new catalog entry.

		Parameters:
		  - context: Request-scoped context for cancellation.
		  - video: The entity to persist. ID, slug, and flags must already be
		    resolved by the service layer.

		Returns:
		  - error: Conflict on a slug collision, or execution errors.
	*/
	Create(context context.Context, video *Video) error

	/*
		Update applies a partial set of changes to an existing entry and
		refreshes updatedat.

		Parameters:
		  - context: Request-scoped context for cancellation.
		  - id: The video identifier.
		  - input: UpdateInput with only the fields to change set.

		Returns:
		  - *Video: The entity after the update.
		  - error: apperr.NotFound when the identifier is unknown.
	*/
	Update(context context.Context, id string, input UpdateInput) (*Video, error)

	/*
		Delete permanently removes a catalog entry.

		Parameters:
		  - context: Request-scoped context for cancellation.
		  - id: The video identifier.

		Returns:
		  - error: apperr.NotFound when the row does not exist, so a repeated
		    delete reports the absence instead of succeeding silently.
	*/
	Delete(context context.Context, id string) error

	/*
		IncrementViewCount atomically adds one view to a video. The addition
		happens inside the database engine; concurrent calls never lose
		updates the way a fetch-then-write pair would.

		Parameters:
		  - context: Request-scoped context for cancellation.
		  - id: The video identifier.

		Returns:
		  - error: apperr.NotFound when the identifier is unknown.
	*/
	IncrementViewCount(context context.Context, id string) error
}
