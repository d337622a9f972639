// Copyright (c) 2026 Vireel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vireel/internal/platform/apperr"
	"github.com/taibuivan/vireel/internal/users/auth"
)

// # Test Doubles

// memoryUserRepository is an in-memory UserRepository. The email uniqueness
// check lives in Create, mirroring the database unique index as the authority.
type memoryUserRepository struct {
	mu      sync.Mutex
	byID    map[string]*auth.User
	byEmail map[string]*auth.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{
		byID:    make(map[string]*auth.User),
		byEmail: make(map[string]*auth.User),
	}
}

func (repo *memoryUserRepository) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.byEmail[user.Email]; exists {
		return apperr.Conflict("Email is already registered")
	}

	stored := *user
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	repo.byID[stored.ID] = &stored
	repo.byEmail[stored.Email] = &stored
	return nil
}

func (repo *memoryUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, exists := repo.byEmail[email]
	if !exists {
		return nil, apperr.NotFound("User not found with this email")
	}
	copied := *user
	return &copied, nil
}

func (repo *memoryUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, exists := repo.byID[id]
	if !exists {
		return nil, apperr.NotFound("User not found")
	}
	copied := *user
	return &copied, nil
}

func (repo *memoryUserRepository) UpdateAvatar(_ context.Context, id string, avatarURL string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, exists := repo.byID[id]
	if !exists {
		return nil, apperr.NotFound("User not found")
	}
	user.AvatarURL = avatarURL
	user.UpdatedAt = time.Now()
	copied := *user
	return &copied, nil
}

// memorySessionRepository is an in-memory SessionRepository.
type memorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]string
}

func newMemorySessionRepository() *memorySessionRepository {
	return &memorySessionRepository{sessions: make(map[string]string)}
}

func (repo *memorySessionRepository) Save(_ context.Context, tokenHash, userID string, _ time.Duration) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.sessions[tokenHash] = userID
	return nil
}

func (repo *memorySessionRepository) Resolve(_ context.Context, tokenHash string) (string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	userID, exists := repo.sessions[tokenHash]
	if !exists {
		return "", apperr.NotFound("Session is invalid or expired")
	}
	return userID, nil
}

func (repo *memorySessionRepository) Revoke(_ context.Context, tokenHash string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	delete(repo.sessions, tokenHash)
	return nil
}

// staticTokenProvider mints deterministic access tokens for assertions.
type staticTokenProvider struct{}

func (staticTokenProvider) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return fmt.Sprintf("access-token-for-%s", userID), nil
}

func newTestService() (*auth.Service, *memoryUserRepository, *memorySessionRepository) {
	users := newMemoryUserRepository()
	sessions := newMemorySessionRepository()
	service := auth.NewService(users, sessions, staticTokenProvider{})
	return service, users, sessions
}

// # Tests

/*
TestService_Register_EstablishesSession verifies that enrollment immediately
yields a usable session for the new account.
*/
func TestService_Register_EstablishesSession(t *testing.T) {
	service, _, _ := newTestService()

	session, err := service.Register(context.Background(), auth.RegisterInput{
		Email:       "viewer@example.com",
		Password:    "correct-horse-battery",
		DisplayName: "Viewer",
	})

	require.NoError(t, err)
	require.NotNil(t, session)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Equal(t, "viewer@example.com", session.User.Email)
	assert.Equal(t, "user", string(session.User.Role))
	assert.NotEqual(t, "correct-horse-battery", session.User.PasswordHash, "password must never be stored in clear")
}

/*
TestService_Register_DuplicateEmailConflict verifies that a second registration
for the same email fails with a conflict and leaves the original account intact.
*/
func TestService_Register_DuplicateEmailConflict(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{
		Email:    "taken@example.com",
		Password: "original-password",
	})
	require.NoError(t, err)

	_, err = service.Register(ctx, auth.RegisterInput{
		Email:    "taken@example.com",
		Password: "attacker-password",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	// The first account's credentials must be untouched by the failed attempt.
	session, err := service.Login(ctx, auth.LoginInput{
		Email:    "taken@example.com",
		Password: "original-password",
	})
	require.NoError(t, err)
	assert.NotNil(t, session)

	_, err = service.Login(ctx, auth.LoginInput{
		Email:    "taken@example.com",
		Password: "attacker-password",
	})
	require.Error(t, err)
}

/*
TestService_Login_UniformFailure verifies that unknown emails and wrong
passwords are indistinguishable to the caller.
*/
func TestService_Login_UniformFailure(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{
		Email:    "known@example.com",
		Password: "the-right-password",
	})
	require.NoError(t, err)

	_, unknownErr := service.Login(ctx, auth.LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	_, wrongErr := service.Login(ctx, auth.LoginInput{
		Email:    "known@example.com",
		Password: "the-wrong-password",
	})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)

	unknownApp := apperr.As(unknownErr)
	wrongApp := apperr.As(wrongErr)
	require.NotNil(t, unknownApp)
	require.NotNil(t, wrongApp)

	assert.Equal(t, "INVALID_CREDENTIALS", unknownApp.Code)
	assert.Equal(t, unknownApp.Code, wrongApp.Code)
	assert.Equal(t, unknownApp.Message, wrongApp.Message)
	assert.Equal(t, unknownApp.HTTPStatus, wrongApp.HTTPStatus)
}

/*
TestService_Logout_Idempotent verifies that revoking an unknown or
already-revoked refresh token still succeeds.
*/
func TestService_Logout_Idempotent(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	session, err := service.Register(ctx, auth.RegisterInput{
		Email:    "viewer@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, session.RefreshToken))
	require.NoError(t, service.Logout(ctx, session.RefreshToken), "second logout must also succeed")
	require.NoError(t, service.Logout(ctx, "never-issued-token"))
}

/*
TestService_RefreshSession_RotatesToken verifies replay protection: a used
refresh token is revoked and cannot be redeemed a second time.
*/
func TestService_RefreshSession_RotatesToken(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	initial, err := service.Register(ctx, auth.RegisterInput{
		Email:    "viewer@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	rotated, err := service.RefreshSession(ctx, initial.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, initial.RefreshToken, rotated.RefreshToken)

	// Replaying the consumed token must fail.
	_, err = service.RefreshSession(ctx, initial.RefreshToken)
	require.Error(t, err)
	replayApp := apperr.As(err)
	require.NotNil(t, replayApp)
	assert.Equal(t, 401, replayApp.HTTPStatus)

	// The rotated token remains redeemable.
	_, err = service.RefreshSession(ctx, rotated.RefreshToken)
	require.NoError(t, err)
}
