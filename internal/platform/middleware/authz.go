// Copyright (c) 2026 Vireel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/taibuivan/vireel/internal/platform/apperr"
	"github.com/taibuivan/vireel/internal/platform/ctxutil"
	"github.com/taibuivan/vireel/internal/platform/respond"
	"github.com/taibuivan/vireel/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the token service
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous (no principal in context).
//  3. If present, parse and verify the JWT via [TokenVerifier].
//  4. Inject the resolved [*sec.Principal] into the request context.
//
// This is the single place where a principal is resolved. Downstream code
// receives it explicitly via context and never re-reads transport state.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			tokenStr := parts[1]
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithPrincipal(request.Context(), claims.Principal())
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireLevel blocks requests whose principal does not satisfy the given
// access level, as decided by the [sec.Authorize] gate.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Error Mapping
//
// The two deny reasons are kept distinct on the wire: UNAUTHENTICATED maps to
// HTTP 401 ("log in"), FORBIDDEN maps to HTTP 403 ("you lack permission").
func RequireLevel(level sec.AccessLevel) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := ctxutil.GetPrincipal(request.Context())

			decision := sec.Authorize(principal, level)
			if !decision.Allowed {
				switch decision.Reason {
				case sec.DenyUnauthenticated:
					respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				default:
					respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				}
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequireAuth blocks anonymous requests. Shorthand for RequireLevel(LevelAuthenticated).
func RequireAuth(next http.Handler) http.Handler {
	return RequireLevel(sec.LevelAuthenticated)(next)
}

// RequireAdmin blocks non-admin requests. Shorthand for RequireLevel(LevelAdmin).
func RequireAdmin(next http.Handler) http.Handler {
	return RequireLevel(sec.LevelAdmin)(next)
}
