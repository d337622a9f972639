// Copyright (c) 2026 Vireel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreVideoTable represents the 'core.video' table
type CoreVideoTable struct {
	Table        string
	ID           string
	Slug         string
	Title        string
	Description  string
	SourceURL    string
	ThumbnailURL string
	Duration     string
	ViewCount    string
	CanPlay      string
	CanShare     string
	CanDownload  string
	CreatedAt    string
	UpdatedAt    string
}

// CoreVideo is the schema definition for core.video
var CoreVideo = CoreVideoTable{
	Table:        "core.video",
	ID:           "id",
	Slug:         "slug",
	Title:        "title",
	Description:  "description",
	SourceURL:    "sourceurl",
	ThumbnailURL: "thumbnailurl",
	Duration:     "duration",
	ViewCount:    "viewcount",
	CanPlay:      "canplay",
	CanShare:     "canshare",
	CanDownload:  "candownload",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t CoreVideoTable) Columns() []string {
	return []string{
		t.ID, t.Slug, t.Title, t.Description, t.SourceURL, t.ThumbnailURL,
		t.Duration, t.ViewCount, t.CanPlay, t.CanShare, t.CanDownload,
		t.CreatedAt, t.UpdatedAt,
	}
}
