// Copyright (c) 2026 Vireel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package sec provides the security primitives of the platform: password hashing,
token generation, JWT signing, and the access control gate.

# Architecture

This package isolates security-sensitive code from the domain logic. The gate
defined in this file is a pure decision function: it performs no I/O and no
mutation, which keeps it independently testable against the full decision table.
*/
package sec

// # Principals

// Principal is the authenticated actor attached to a request.
//
// A request carries either no Principal (anonymous) or exactly one, resolved
// once per request by the authentication middleware and threaded explicitly
// through every operation that needs it.
type Principal struct {
	// UserID is the opaque unique identifier of the account.
	UserID string `json:"user_id"`
	// Role is the authorization level of the account. Immutable per session.
	Role UserRole `json:"role"`
}

// IsAdmin reports whether the principal holds the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role.AtLeast(RoleAdmin)
}

// # Access Levels

// AccessLevel classifies an operation by the privilege it requires.
type AccessLevel int

const (
	// LevelPublic operations are open to anonymous callers.
	LevelPublic AccessLevel = iota

	// LevelAuthenticated operations require any signed-in principal.
	LevelAuthenticated

	// LevelAdmin operations require a principal holding [RoleAdmin].
	LevelAdmin
)

// String returns the human-readable name of the level (used in logs).
func (l AccessLevel) String() string {
	switch l {
	case LevelPublic:
		return "public"
	case LevelAuthenticated:
		return "authenticated"
	case LevelAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// # Decisions

// DenyReason identifies why the gate rejected a request.
type DenyReason string

const (
	// DenyNone means the request was allowed.
	DenyNone DenyReason = ""

	// DenyUnauthenticated means no principal was present where one is required.
	// Clients should route the user to the login flow.
	DenyUnauthenticated DenyReason = "UNAUTHENTICATED"

	// DenyForbidden means a principal was present but its role is insufficient.
	// Logging in again will not help.
	DenyForbidden DenyReason = "FORBIDDEN"
)

// Decision is the outcome of an [Authorize] call.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

/*
Authorize classifies a request against the required access level.

Description: The single enforcement point for role-based access. The
distinction between the two deny reasons matters: UNAUTHENTICATED tells the
caller to log in, FORBIDDEN tells them they lack permission.

Parameters:
  - principal: *Principal (nil for anonymous requests)
  - level: AccessLevel

Returns:
  - Decision: Allowed, or denied with a stable reason
*/
func Authorize(principal *Principal, level AccessLevel) Decision {
	switch level {
	case LevelPublic:
		return Decision{Allowed: true}

	case LevelAuthenticated:
		if principal == nil {
			return Decision{Reason: DenyUnauthenticated}
		}
		return Decision{Allowed: true}

	case LevelAdmin:
		if principal == nil {
			return Decision{Reason: DenyUnauthenticated}
		}
		if !principal.Role.AtLeast(RoleAdmin) {
			return Decision{Reason: DenyForbidden}
		}
		return Decision{Allowed: true}

	default:
		// Unknown levels fail closed.
		return Decision{Reason: DenyForbidden}
	}
}
