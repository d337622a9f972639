// Copyright (c) 2026 Vireel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/vireel/internal/platform/apperr"
	"github.com/taibuivan/vireel/internal/platform/constants"
)

// # Session Repository

// RedisSessionRepository implements SessionRepository using Redis. Keys carry
// their own TTL, so expired sessions disappear without a cleanup job.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(tokenHash string) string {
	return fmt.Sprintf("%s%s", constants.RedisPrefixSession, tokenHash)
}

/*
Save stores a refresh session keyed by token hash with the given TTL.

Parameters:
  - context: context.Context
  - tokenHash: string
  - userID: string
  - ttl: time.Duration

Returns:
  - error: Storage failures
*/
func (repository *RedisSessionRepository) Save(context context.Context, tokenHash string, userID string, ttl time.Duration) error {
	if err := repository.client.Set(context, sessionKey(tokenHash), userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_save_failed: %w", err)
	}
	return nil
}

/*
Resolve retrieves the userID bound to a refresh token hash.

Description: Returns apperr.NotFound if the session is absent or expired.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - string: Bound UserID
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) Resolve(context context.Context, tokenHash string) (string, error) {
	userID, err := repository.client.Get(context, sessionKey(tokenHash)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Session is invalid or expired")
		}
		return "", fmt.Errorf("redis_session_resolve_failed: %w", err)
	}
	return userID, nil
}

/*
Revoke removes the session from Redis. Deleting an unknown key is a no-op.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionRepository) Revoke(context context.Context, tokenHash string) error {
	if err := repository.client.Del(context, sessionKey(tokenHash)).Err(); err != nil {
		return fmt.Errorf("redis_session_revoke_failed: %w", err)
	}
	return nil
}
