// Copyright (c) 2026 Vireel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package video defines the core domain entities for the Vireel catalog.

It manages the lifecycle of playable titles including metadata, per-video
capability flags, and view metrics.

Core Responsibility:

  - Catalog: Defines the Video aggregate and its admin-managed lifecycle.
  - Access shaping: Projects stored videos into audience-specific views so the
    source locator never leaks to a caller the flags do not entitle.
  - Analytics: Tracks view counts with lost-update-safe increments.

This package acts as the source of truth for all content-related data models.
*/
package video

import "time"

// # Core Entities

// Video is the central aggregate of the Vireel domain.
// It represents a single playable title in the catalog.
type Video struct {
	ID           string `json:"id"`
	Slug         string `json:"slug"` // URL-safe identifier
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	SourceURL    string `json:"source_url"` // Where the playable asset resides
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Duration     string `json:"duration,omitempty"` // Display string, format unvalidated

	// # Capability Flags
	// Per-video booleans gating end-user actions. They are independent of the
	// caller's role: a false flag denies admins the action too.
	CanPlay     bool `json:"can_play"`
	CanShare    bool `json:"can_share"`
	CanDownload bool `json:"can_download"`

	// # Computed Metrics
	ViewCount int64 `json:"view_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Audience Views

// PublicVideoView is the list projection served to authenticated viewers.
// It never carries the source locator, whatever the capability flags say.
type PublicVideoView struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Duration     string    `json:"duration,omitempty"`
	ViewCount    int64     `json:"view_count"`
	CanPlay      bool      `json:"can_play"`
	CanShare     bool      `json:"can_share"`
	CanDownload  bool      `json:"can_download"`
	CreatedAt    time.Time `json:"created_at"`
}

// DetailedVideoView is the single-title projection for authenticated viewers.
// Playback needs the source locator, so the detail view carries it; the detail
// fetch has already counted the view by the time this projection is built.
type DetailedVideoView struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	SourceURL    string    `json:"source_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Duration     string    `json:"duration,omitempty"`
	ViewCount    int64     `json:"view_count"`
	CanPlay      bool      `json:"can_play"`
	CanShare     bool      `json:"can_share"`
	CanDownload  bool      `json:"can_download"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AdminVideoView exposes every stored field verbatim. Capability flags gate
// end-user actions, not admin visibility.
type AdminVideoView struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	SourceURL    string    `json:"source_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Duration     string    `json:"duration,omitempty"`
	ViewCount    int64     `json:"view_count"`
	CanPlay      bool      `json:"can_play"`
	CanShare     bool      `json:"can_share"`
	CanDownload  bool      `json:"can_download"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and dynamic query mapping.
const (
	FieldID           = "id"
	FieldSlug         = "slug"
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldSourceURL    = "source_url"
	FieldThumbnailURL = "thumbnail_url"
	FieldDuration     = "duration"
	FieldCanPlay      = "can_play"
	FieldCanShare     = "can_share"
	FieldCanDownload  = "can_download"
)
