// Copyright (c) 2026 Vireel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # Repository Contracts

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	/*
		Create persists a new user account.

		Parameters:
		  - context: Request-scoped context for cancellation.
		  - user: The account to persist. ID and timestamps must be set by the caller.

		Returns:
		  - error: A conflict error when the email is already registered, or an
		    internal error on storage failure.
	*/
	Create(context context.Context, user *User) error

	/*
		FindByEmail retrieves an account by its exact email address.

		Parameters:
		  - context: Request-scoped context for cancellation.
		  - email: The email to look up. Matching is exact, no normalization.

		Returns:
		  - *User: The matching account.
		  - error: A not-found error when no account has that email.
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByID retrieves an account by its unique identifier.

		Parameters:
		  - context: Request-scoped context for cancellation.
		  - id: The account identifier.

		Returns:
		  - *User: The matching account.
		  - error: A not-found error when the identifier is unknown.
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		UpdateAvatar replaces the stored avatar locator for an account.

		Parameters:
		  - context: Request-scoped context for cancellation.
		  - id: The account identifier.
		  - avatarURL: The new avatar locator. An empty string clears it.

		Returns:
		  - *User: The account after the update.
		  - error: A not-found error when the identifier is unknown.
	*/
	UpdateAvatar(context context.Context, id string, avatarURL string) (*User, error)
}

// SessionRepository defines storage for opaque refresh sessions. Keys are
// token hashes, never raw tokens, so a storage dump cannot be replayed.
type SessionRepository interface {
	/*
		Save binds a refresh token hash to a user for the given lifetime.

		Parameters:
		  - context: Request-scoped context for cancellation.
		  - tokenHash: Hex-encoded digest of the refresh token.
		  - userID: The account the session belongs to.
		  - ttl: How long the session stays valid.

		Returns:
		  - error: An internal error on storage failure.
	*/
	Save(context context.Context, tokenHash string, userID string, ttl time.Duration) error

	/*
		Resolve looks up the user bound to a refresh token hash.

		Parameters:
		  - context: Request-scoped context for cancellation.
		  - tokenHash: Hex-encoded digest of the refresh token.

		Returns:
		  - string: The bound user identifier.
		  - error: A not-found error when the session does not exist or expired.
	*/
	Resolve(context context.Context, tokenHash string) (string, error)

	/*
		Revoke removes a refresh session. Revoking an unknown hash is not an
		error; revocation is idempotent.

		Parameters:
		  - context: Request-scoped context for cancellation.
		  - tokenHash: Hex-encoded digest of the refresh token.

		Returns:
		  - error: An internal error on storage failure.
	*/
	Revoke(context context.Context, tokenHash string) error
}
