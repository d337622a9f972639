// Copyright (c) 2026 Vireel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video

import (
	"github.com/taibuivan/vireel/internal/platform/apperr"
)

// # Projection Engine
//
// Pure field-visibility shaping. Projections decide which stored fields a
// given audience sees; they never re-derive capability flags and never touch
// storage. Action enforcement (download, share) lives beside them but is a
// separate concern from visibility.

// ProjectForList shapes a stored video for the authenticated catalog listing.
// The source locator is withheld: a scrapeable list must not hand out what
// the play and download gates are there to protect.
func ProjectForList(video *Video) PublicVideoView {
	return PublicVideoView{
		ID:           video.ID,
		Slug:         video.Slug,
		Title:        video.Title,
		Description:  video.Description,
		ThumbnailURL: video.ThumbnailURL,
		Duration:     video.Duration,
		ViewCount:    video.ViewCount,
		CanPlay:      video.CanPlay,
		CanShare:     video.CanShare,
		CanDownload:  video.CanDownload,
		CreatedAt:    video.CreatedAt,
	}
}

// ProjectForDetail shapes a stored video for the single-title page. Playback
// requires the source locator, so it is included; callers must have already
// recorded the view before building this projection.
func ProjectForDetail(video *Video) DetailedVideoView {
	return DetailedVideoView{
		ID:           video.ID,
		Slug:         video.Slug,
		Title:        video.Title,
		Description:  video.Description,
		SourceURL:    video.SourceURL,
		ThumbnailURL: video.ThumbnailURL,
		Duration:     video.Duration,
		ViewCount:    video.ViewCount,
		CanPlay:      video.CanPlay,
		CanShare:     video.CanShare,
		CanDownload:  video.CanDownload,
		CreatedAt:    video.CreatedAt,
		UpdatedAt:    video.UpdatedAt,
	}
}

// ProjectForAdmin exposes every stored field verbatim. Capability flags gate
// end-user actions, not administrative visibility, so nothing is withheld.
func ProjectForAdmin(video *Video) AdminVideoView {
	return AdminVideoView{
		ID:           video.ID,
		Slug:         video.Slug,
		Title:        video.Title,
		Description:  video.Description,
		SourceURL:    video.SourceURL,
		ThumbnailURL: video.ThumbnailURL,
		Duration:     video.Duration,
		ViewCount:    video.ViewCount,
		CanPlay:      video.CanPlay,
		CanShare:     video.CanShare,
		CanDownload:  video.CanDownload,
		CreatedAt:    video.CreatedAt,
		UpdatedAt:    video.UpdatedAt,
	}
}

// # Capability Gates

// AuthorizeDownload reports whether the download action is permitted for the
// title. The check is independent of the caller's role: an admin is denied
// exactly like a viewer when the flag is off.
func AuthorizeDownload(video *Video) error {
	if !video.CanDownload {
		return apperr.DownloadNotPermitted()
	}
	return nil
}

// AuthorizeShare reports whether the share affordance may be offered for the
// title. Deep-link construction is a client concern; this gate only shapes
// the response.
func AuthorizeShare(video *Video) error {
	if !video.CanShare {
		return apperr.ShareNotPermitted()
	}
	return nil
}
