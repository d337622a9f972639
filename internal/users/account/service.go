// Copyright (c) 2026 Vireel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/vireel/internal/users/auth"
)

// # Contracts

// AccountRepository is the subset of user persistence the account domain
// needs. The auth package's PostgresUserRepository satisfies it.
type AccountRepository interface {
	FindByID(context context.Context, id string) (*auth.User, error)
	UpdateAvatar(context context.Context, id string, avatarURL string) (*auth.User, error)
}

// # Service Layer

// Service orchestrates business logic for user account self-management.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

/*
UpdateAvatar replaces the caller's avatar locator.

Description: The locator is an opaque reference to an externally hosted image;
this service stores it verbatim after transport-level validation.

Parameters:
  - context: context.Context
  - userID: string
  - avatarURL: string (empty clears the avatar)

Returns:
  - *auth.User: The updated user profile
  - error: Not found or storage failures
*/
func (service *Service) UpdateAvatar(context context.Context, userID string, avatarURL string) (*auth.User, error) {
	user, err := service.accountRepository.UpdateAvatar(context, userID, avatarURL)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_avatar_failed: %w", err)
	}

	service.logger.Info("user_avatar_updated", slog.String("user_id", userID))

	return user, nil
}
