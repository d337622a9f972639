// Copyright (c) 2026 Vireel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vireel/internal/api"
	"github.com/taibuivan/vireel/internal/core/stats"
	"github.com/taibuivan/vireel/internal/core/video"
	"github.com/taibuivan/vireel/internal/platform/apperr"
	"github.com/taibuivan/vireel/internal/platform/config"
	"github.com/taibuivan/vireel/internal/platform/constants"
	"github.com/taibuivan/vireel/internal/platform/sec"
	"github.com/taibuivan/vireel/internal/users/account"
	"github.com/taibuivan/vireel/internal/users/auth"
)

// # In-Memory Stores
//
// The full router is exercised against in-memory repositories; only the
// storage edge is substituted, every middleware and handler is real.

type fakeUserRepository struct {
	mu      sync.Mutex
	byID    map[string]*auth.User
	byEmail map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:    make(map[string]*auth.User),
		byEmail: make(map[string]*auth.User),
	}
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, exists := repo.byEmail[user.Email]; exists {
		return apperr.Conflict("Email is already registered")
	}
	stored := *user
	repo.byID[stored.ID] = &stored
	repo.byEmail[stored.Email] = &stored
	return nil
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	user, exists := repo.byEmail[email]
	if !exists {
		return nil, apperr.NotFound("User not found with this email")
	}
	copied := *user
	return &copied, nil
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	user, exists := repo.byID[id]
	if !exists {
		return nil, apperr.NotFound("User not found")
	}
	copied := *user
	return &copied, nil
}

func (repo *fakeUserRepository) UpdateAvatar(_ context.Context, id string, avatarURL string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	user, exists := repo.byID[id]
	if !exists {
		return nil, apperr.NotFound("User not found")
	}
	user.AvatarURL = avatarURL
	copied := *user
	return &copied, nil
}

// promote flips an account's role, standing in for the out-of-band SQL an
// operator would run in production.
func (repo *fakeUserRepository) promote(email string, role sec.UserRole) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if user, exists := repo.byEmail[email]; exists {
		user.Role = role
	}
}

type fakeSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]string
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[string]string)}
}

func (repo *fakeSessionRepository) Save(_ context.Context, tokenHash, userID string, _ time.Duration) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.sessions[tokenHash] = userID
	return nil
}

func (repo *fakeSessionRepository) Resolve(_ context.Context, tokenHash string) (string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	userID, exists := repo.sessions[tokenHash]
	if !exists {
		return "", apperr.NotFound("Session is invalid or expired")
	}
	return userID, nil
}

func (repo *fakeSessionRepository) Revoke(_ context.Context, tokenHash string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	delete(repo.sessions, tokenHash)
	return nil
}

type fakeVideoRepository struct {
	mu     sync.Mutex
	videos map[string]*video.Video
}

func newFakeVideoRepository() *fakeVideoRepository {
	return &fakeVideoRepository{videos: make(map[string]*video.Video)}
}

func (repo *fakeVideoRepository) List(_ context.Context, limit, offset int) ([]*video.Video, int, error) {
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

func (repo *fakeVideoRepository) FindByID(_ context.Context, id string) (*video.Video, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	entity, exists := repo.videos[id]
	if !exists {
		return nil, apperr.NotFound("video")
	}
	copied := *entity
	return &copied, nil
}

func (repo *fakeVideoRepository) FindBySlug(_ context.Context, slug string) (*video.Video, error) {
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

func (repo *fakeVideoRepository) Create(_ context.Context, entity *video.Video) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	copied := *entity
	repo.videos[copied.ID] = &copied
	return nil
}

func (repo *fakeVideoRepository) Update(_ context.Context, id string, input video.UpdateInput) (*video.Video, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	entity, exists := repo.videos[id]
	if !exists {
		return nil, apperr.NotFound("video")
	}
	if input.Title != nil {
		entity.Title = *input.Title
	}
	if input.CanDownload != nil {
		entity.CanDownload = *input.CanDownload
	}
	entity.UpdatedAt = time.Now()
	copied := *entity
	return &copied, nil
}

func (repo *fakeVideoRepository) Delete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, exists := repo.videos[id]; !exists {
		return apperr.NotFound("video")
	}
	delete(repo.videos, id)
	return nil
}

func (repo *fakeVideoRepository) IncrementViewCount(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	entity, exists := repo.videos[id]
	if !exists {
		return apperr.NotFound("video")
	}
	entity.ViewCount++
	return nil
}

type fakeStatsRepository struct {
	users  *fakeUserRepository
	videos *fakeVideoRepository
}

func (repo *fakeStatsRepository) CountVideos(_ context.Context) (int64, error) {
	repo.videos.mu.Lock()
	defer repo.videos.mu.Unlock()
	return int64(len(repo.videos.videos)), nil
}

func (repo *fakeStatsRepository) CountUsers(_ context.Context) (int64, error) {
	repo.users.mu.Lock()
	defer repo.users.mu.Unlock()
	return int64(len(repo.users.byID)), nil
}

func (repo *fakeStatsRepository) SumVideoViews(_ context.Context) (int64, error) {
	repo.videos.mu.Lock()
	defer repo.videos.mu.Unlock()
	var total int64
	for _, entity := range repo.videos.videos {
		total += entity.ViewCount
	}
	return total, nil
}

// # Test Harness

type testStack struct {
	server *httptest.Server
	users  *fakeUserRepository
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tokenService := sec.NewTokenServiceFromKeys(privateKey, &privateKey.PublicKey, constants.AuthIssuer)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		ServerPort:  "0",
		Environment: "development",
	}

	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	videos := newFakeVideoRepository()

	authService := auth.NewService(users, sessions, tokenService)
	accountService := account.NewService(users, logger)
	videoService := video.NewService(videos, logger)
	statsService := stats.NewService(&fakeStatsRepository{users: users, videos: videos}, logger)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{}, logger)

	server := api.NewServer(context.Background(), cfg, logger, tokenService, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Account:   account.NewHandler(accountService),
		Video:     video.NewHandler(videoService),
		Stats:     stats.NewHandler(statsService),
	})

	testServer := httptest.NewServer(server.Router())
	t.Cleanup(testServer.Close)

	return &testStack{server: testServer, users: users}
}

func (stack *testStack) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequest(method, stack.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{
		// Redirects are asserted directly, never followed.
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	response, err := client.Do(request)
	require.NoError(t, err)
	return response
}

func decodeData(t *testing.T, response *http.Response) map[string]any {
	t.Helper()
	defer response.Body.Close()

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(response.Body).Decode(&envelope))
	return envelope.Data
}

func register(t *testing.T, stack *testStack, email, password string) string {
	t.Helper()

	response := stack.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)

	data := decodeData(t, response)
	token, _ := data["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func login(t *testing.T, stack *testStack, email, password string) string {
	t.Helper()

	response := stack.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, response.StatusCode)

	data := decodeData(t, response)
	token, _ := data["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

// # End-To-End Tests

/*
TestAdminSurface_RoleEscalationFlow walks the full promotion story over the
real router: a fresh member is refused at the admin surface, gets promoted
out-of-band, re-authenticates, and then manages the catalog.
*/
func TestAdminSurface_RoleEscalationFlow(t *testing.T) {
	stack := newTestStack(t)

	// A fresh registration always lands as a plain member.
	memberToken := register(t, stack, "casey@example.com", "correct-horse-battery")

	response := stack.do(t, http.MethodGet, "/api/v1/admin/videos", memberToken, nil)
	assert.Equal(t, http.StatusForbidden, response.StatusCode)
	response.Body.Close()

	response = stack.do(t, http.MethodPost, "/api/v1/admin/videos", memberToken, map[string]string{
		"title":      "Should Not Exist",
		"source_url": "https://cdn.vireel.app/assets/no.mp4",
	})
	assert.Equal(t, http.StatusForbidden, response.StatusCode)
	response.Body.Close()

	// Promotion happens outside the API; the old token still carries the old
	// role, so a fresh login is needed to pick it up.
	stack.users.promote("casey@example.com", sec.RoleAdmin)
	adminToken := login(t, stack, "casey@example.com", "correct-horse-battery")

	response = stack.do(t, http.MethodPost, "/api/v1/admin/videos", adminToken, map[string]string{
		"title":      "Launch Trailer",
		"source_url": "https://cdn.vireel.app/assets/launch.mp4",
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)

	created := decodeData(t, response)
	assert.Equal(t, float64(0), created["view_count"])
	assert.Equal(t, false, created["can_download"])
	assert.Equal(t, true, created["can_play"])
	assert.Equal(t, "launch-trailer", created["slug"])
	assert.Equal(t, "https://cdn.vireel.app/assets/launch.mp4", created["source_url"])
}

/*
TestViewerSurface_AuthenticationAndProjection verifies the viewer surface
requires a principal and that list responses withhold the source locator.
*/
func TestViewerSurface_AuthenticationAndProjection(t *testing.T) {
	stack := newTestStack(t)

	// Anonymous callers are turned away from the catalog.
	response := stack.do(t, http.MethodGet, "/api/v1/videos", "", nil)
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
	response.Body.Close()

	// Seed a title through the admin surface.
	register(t, stack, "admin@example.com", "correct-horse-battery")
	stack.users.promote("admin@example.com", sec.RoleAdmin)
	adminToken := login(t, stack, "admin@example.com", "correct-horse-battery")

	response = stack.do(t, http.MethodPost, "/api/v1/admin/videos", adminToken, map[string]string{
		"title":      "Hidden Source",
		"source_url": "https://cdn.vireel.app/assets/hidden.mp4",
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)
	response.Body.Close()

	// A plain member sees the list without the locator.
	memberToken := register(t, stack, "viewer@example.com", "correct-horse-battery")
	response = stack.do(t, http.MethodGet, "/api/v1/videos", memberToken, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)

	raw, err := io.ReadAll(response.Body)
	response.Body.Close()
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hidden.mp4")
	assert.Contains(t, string(raw), "Hidden Source")
}

/*
TestDownloadEndpoint_CapabilityGate verifies the redirect fires only for
titles with downloads enabled, and that admins get no exemption.
*/
func TestDownloadEndpoint_CapabilityGate(t *testing.T) {
	stack := newTestStack(t)

	register(t, stack, "root@example.com", "correct-horse-battery")
	stack.users.promote("root@example.com", sec.RoleAdmin)
	adminToken := login(t, stack, "root@example.com", "correct-horse-battery")

	response := stack.do(t, http.MethodPost, "/api/v1/admin/videos", adminToken, map[string]any{
		"title":        "No Downloads",
		"source_url":   "https://cdn.vireel.app/assets/locked.mp4",
		"can_download": false,
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)
	locked := decodeData(t, response)
	lockedID, _ := locked["id"].(string)

	response = stack.do(t, http.MethodPost, "/api/v1/admin/videos", adminToken, map[string]any{
		"title":        "Free Downloads",
		"source_url":   "https://cdn.vireel.app/assets/free.mp4",
		"can_download": true,
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)
	open := decodeData(t, response)
	openID, _ := open["id"].(string)

	// The admin is denied on the locked title like anyone else.
	response = stack.do(t, http.MethodGet, "/api/v1/videos/"+lockedID+"/download", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, response.StatusCode)
	response.Body.Close()

	// The open title redirects to its locator.
	response = stack.do(t, http.MethodGet, "/api/v1/videos/"+openID+"/download", adminToken, nil)
	assert.Equal(t, http.StatusFound, response.StatusCode)
	assert.Equal(t, "https://cdn.vireel.app/assets/free.mp4", response.Header.Get("Location"))
	response.Body.Close()
}

/*
TestStatsEndpoint_Aggregates verifies the dashboard sums real state.
*/
func TestStatsEndpoint_Aggregates(t *testing.T) {
	stack := newTestStack(t)

	register(t, stack, "ops@example.com", "correct-horse-battery")
	stack.users.promote("ops@example.com", sec.RoleAdmin)
	adminToken := login(t, stack, "ops@example.com", "correct-horse-battery")

	response := stack.do(t, http.MethodPost, "/api/v1/admin/videos", adminToken, map[string]string{
		"title":      "Counted Once",
		"source_url": "https://cdn.vireel.app/assets/counted.mp4",
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)
	created := decodeData(t, response)
	videoID, _ := created["id"].(string)

	// Two detail fetches, two views.
	for i := 0; i < 2; i++ {
		detailResponse := stack.do(t, http.MethodGet, "/api/v1/videos/"+videoID, adminToken, nil)
		require.Equal(t, http.StatusOK, detailResponse.StatusCode)
		detailResponse.Body.Close()
	}

	response = stack.do(t, http.MethodGet, "/api/v1/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	overview := decodeData(t, response)

	assert.Equal(t, float64(1), overview["total_videos"])
	assert.Equal(t, float64(1), overview["total_users"])
	assert.Equal(t, float64(2), overview["total_views"])
}
