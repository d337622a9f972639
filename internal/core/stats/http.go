// Copyright (c) 2026 Vireel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vireel/internal/platform/middleware"
	"github.com/taibuivan/vireel/internal/platform/respond"
)

// Handler implements the HTTP layer for admin statistics.
type Handler struct {
	statsService *Service
}

// NewHandler constructs a new stats [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{statsService: service}
}

// Routes returns the admin-gated stats router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAdmin)

	router.Get("/", handler.overview)

	return router
}

/*
GET /api/v1/admin/stats.

Description: Returns the aggregate usage snapshot for administrators.

Response:
  - 200: Overview: {total_videos, total_users, total_views}
  - 401: ErrUnauthorized: Missing principal
  - 403: ErrForbidden: Caller is not an admin
*/
func (handler *Handler) overview(writer http.ResponseWriter, request *http.Request) {
	overview, err := handler.statsService.GetOverview(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, overview)
}
