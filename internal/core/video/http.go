// Copyright (c) 2026 Vireel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package video provides the HTTP delivery layer for the catalog.

Two route groups are exposed: the viewer surface (browse, detail, download)
for any authenticated member, and the management surface (CRUD) for admins.
The split matters because the two audiences see different projections of the
same stored entity.
*/
package video

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vireel/internal/platform/middleware"
	requestutil "github.com/taibuivan/vireel/internal/platform/request"
	"github.com/taibuivan/vireel/internal/platform/respond"
	"github.com/taibuivan/vireel/internal/platform/validate"
	"github.com/taibuivan/vireel/pkg/pagination"
)

// Handler implements the HTTP layer for the video catalog.
type Handler struct {
	videoService *Service
}

// NewHandler constructs a new video [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{videoService: service}
}

// Routes returns the viewer-facing router. Every endpoint requires an
// authenticated principal; the capability flags do the per-title gating.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Get("/{idOrSlug}", handler.detail)
	router.Get("/{idOrSlug}/download", handler.download)

	return router
}

// AdminRoutes returns the management router. The admin gate is applied here
// rather than at the mount point so the requirement travels with the routes.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAdmin)

	router.Get("/", handler.adminList)
	router.Post("/", handler.adminCreate)
	router.Get("/{id}", handler.adminGet)
	router.Patch("/{id}", handler.adminUpdate)
	router.Delete("/{id}", handler.adminDelete)

	return router
}

// # Viewer Endpoints

/*
GET /api/v1/videos.

Description: Paginated catalog listing, newest first. Each entry is the
public projection: the source locator is never present here.

Response:
  - 200: []PublicVideoView with pagination metadata
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	videos, total, err := handler.videoService.ListVideos(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views := make([]PublicVideoView, 0, len(videos))
	for _, video := range videos {
		views = append(views, ProjectForList(video))
	}

	respond.Paginated(writer, views, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/videos/{idOrSlug}.

Description: Single-title detail. Fetching the detail counts a view, and the
returned view_count already includes this request.

Response:
  - 200: DetailedVideoView
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Unknown id or slug
*/
func (handler *Handler) detail(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.Param(request, "idOrSlug")

	video, err := handler.videoService.GetDetail(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ProjectForDetail(video))
}

/*
GET /api/v1/videos/{idOrSlug}/download.

Description: Redirects to the source locator when the title permits
downloads. The gate is per-title and role-independent.

Response:
  - 302: Location: source locator
  - 403: DOWNLOAD_NOT_PERMITTED: Downloads disabled for this title
  - 404: ErrNotFound: Unknown id or slug
*/
func (handler *Handler) download(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.Param(request, "idOrSlug")

	location, err := handler.videoService.ResolveDownload(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Redirect(writer, request, location)
}

// # Admin Endpoints

// createVideoRequest is the admin payload for a new catalog entry. Capability
// flags are optional; absence means the catalog defaults.
type createVideoRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	SourceURL    string `json:"source_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Duration     string `json:"duration"`
	CanPlay      *bool  `json:"can_play"`
	CanShare     *bool  `json:"can_share"`
	CanDownload  *bool  `json:"can_download"`
}

// updateVideoRequest is the admin payload for a partial update. view_count
// and created_at have no place in this shape on purpose.
type updateVideoRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	SourceURL    *string `json:"source_url"`
	ThumbnailURL *string `json:"thumbnail_url"`
	Duration     *string `json:"duration"`
	CanPlay      *bool   `json:"can_play"`
	CanShare     *bool   `json:"can_share"`
	CanDownload  *bool   `json:"can_download"`
}

/*
GET /api/v1/admin/videos.

Description: Paginated catalog listing with the admin projection, source
locator included for every entry.

Response:
  - 200: []AdminVideoView with pagination metadata
  - 403: ErrForbidden: Caller is not an admin
*/
func (handler *Handler) adminList(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	videos, total, err := handler.videoService.ListVideos(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views := make([]AdminVideoView, 0, len(videos))
	for _, video := range videos {
		views = append(views, ProjectForAdmin(video))
	}

	respond.Paginated(writer, views, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/admin/videos/{id}.

Description: Single entry with the admin projection. This read does NOT count
a view; administrative inspection is not audience engagement.

Response:
  - 200: AdminVideoView
  - 404: ErrNotFound: Unknown id
*/
func (handler *Handler) adminGet(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	video, err := handler.videoService.GetVideo(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ProjectForAdmin(video))
}

/*
POST /api/v1/admin/videos.

Description: Creates a catalog entry. Play and share default on, download
defaults off, and the view counter always starts at zero.

Request:
  - Body: createVideoRequest

Response:
  - 201: AdminVideoView: The created entry
  - 400: ErrInvalidJSON/Validation: Missing title or source locator
*/
func (handler *Handler) adminCreate(writer http.ResponseWriter, request *http.Request) {
	var input createVideoRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	video, err := handler.videoService.CreateVideo(request.Context(), CreateInput{
		Title:        input.Title,
		Description:  input.Description,
		SourceURL:    input.SourceURL,
		ThumbnailURL: input.ThumbnailURL,
		Duration:     input.Duration,
		CanPlay:      input.CanPlay,
		CanShare:     input.CanShare,
		CanDownload:  input.CanDownload,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, ProjectForAdmin(video))
}

/*
PATCH /api/v1/admin/videos/{id}.

Description: Applies only the supplied fields; everything else keeps its
stored value. updated_at is refreshed by the store.

Request:
  - Body: updateVideoRequest (Partial JSON)

Response:
  - 200: AdminVideoView: The entry after the update
  - 400: ErrInvalidJSON/Validation: Invalid supplied field
  - 404: ErrNotFound: Unknown id
*/
func (handler *Handler) adminUpdate(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	var input updateVideoRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	video, err := handler.videoService.UpdateVideo(request.Context(), id, UpdateInput{
		Title:        input.Title,
		Description:  input.Description,
		SourceURL:    input.SourceURL,
		ThumbnailURL: input.ThumbnailURL,
		Duration:     input.Duration,
		CanPlay:      input.CanPlay,
		CanShare:     input.CanShare,
		CanDownload:  input.CanDownload,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ProjectForAdmin(video))
}

/*
DELETE /api/v1/admin/videos/{id}.

Description: Hard delete. Repeating the call for the same id yields 404, not
a silent success.

Response:
  - 204: No Content: Entry removed
  - 404: ErrNotFound: Unknown or already deleted id
*/
func (handler *Handler) adminDelete(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	if err := handler.videoService.DeleteVideo(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
