// Copyright (c) 2026 Vireel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account provides the HTTP delivery layer for profile self-management.

It implements the RESTful interface for users to read their own account data
and maintain their avatar.

# Security

All endpoints in this package require an active authentication session provided
by the RequireAuth middleware.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/vireel/internal/platform/request"
	"github.com/taibuivan/vireel/internal/platform/respond"
	"github.com/taibuivan/vireel/internal/platform/validate"
	"github.com/taibuivan/vireel/internal/users/auth"
)

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/me", handler.getMe)
	router.Patch("/me", handler.updateMe)

	return router
}

// # User Profile Endpoints

/*
GET /api/v1/account/me.

Description: Retrieves the full private profile of the authenticated user.

Response:
  - 200: User: Fully hydrated user profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateMeRequest defines the expected JSON payload for profile updates.
type updateMeRequest struct {
	AvatarURL *string `json:"avatar_url"`
}

/*
PATCH /api/v1/account/me.

Description: Applies partial updates to the authenticated user's profile.
Currently the avatar locator is the only mutable field.

Request:
  - body: updateMeRequest (Partial JSON)

Response:
  - 200: User: The updated profile
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.AvatarURL == nil {
		respond.Error(writer, request, validate.RequiredError(auth.FieldAvatarURL, "is required"))
		return
	}

	// An empty locator clears the avatar; anything else must be an absolute URL.
	if *input.AvatarURL != "" {
		validator := &validate.Validator{}
		validator.URL(auth.FieldAvatarURL, *input.AvatarURL).
			MaxLen(auth.FieldAvatarURL, *input.AvatarURL, 2048)
		if err := validator.Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	user, err := handler.accountService.UpdateAvatar(request.Context(), userID, *input.AvatarURL)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
