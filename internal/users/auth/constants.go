// Copyright (c) 2026 Vireel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Session Lifetimes

const (
	// AccessTokenTTL bounds how long a stolen bearer token stays usable.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the maximum session length without re-login.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the entropy, in bytes, of an opaque refresh token.
	RefreshTokenLength = 32
)

// # Validation Bounds

const (
	PasswordMinLength    = 8
	PasswordMaxLength    = 72 // bcrypt truncates beyond 72 bytes.
	EmailMaxLength       = 254
	DisplayNameMaxLength = 100
)
