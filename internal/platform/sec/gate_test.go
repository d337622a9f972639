// Copyright (c) 2026 Vireel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/vireel/internal/platform/sec"
)

/*
TestAuthorize_DecisionTable enumerates every (principal state × access level)
combination as a literal test case. The gate is a pure function, so this table
is the complete behavior.
*/
func TestAuthorize_DecisionTable(t *testing.T) {
	anonymous := (*sec.Principal)(nil)
	viewer := &sec.Principal{UserID: "u-viewer", Role: sec.RoleUser}
	admin := &sec.Principal{UserID: "u-admin", Role: sec.RoleAdmin}

	tests := []struct {
		name       string
		principal  *sec.Principal
		level      sec.AccessLevel
		wantAllow  bool
		wantReason sec.DenyReason
	}{
		{"anonymous_public", anonymous, sec.LevelPublic, true, sec.DenyNone},
		{"anonymous_authenticated", anonymous, sec.LevelAuthenticated, false, sec.DenyUnauthenticated},
		{"anonymous_admin", anonymous, sec.LevelAdmin, false, sec.DenyUnauthenticated},

		{"user_public", viewer, sec.LevelPublic, true, sec.DenyNone},
		{"user_authenticated", viewer, sec.LevelAuthenticated, true, sec.DenyNone},
		{"user_admin", viewer, sec.LevelAdmin, false, sec.DenyForbidden},

		{"admin_public", admin, sec.LevelPublic, true, sec.DenyNone},
		{"admin_authenticated", admin, sec.LevelAuthenticated, true, sec.DenyNone},
		{"admin_admin", admin, sec.LevelAdmin, true, sec.DenyNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := sec.Authorize(tt.principal, tt.level)

			assert.Equal(t, tt.wantAllow, decision.Allowed)
			assert.Equal(t, tt.wantReason, decision.Reason)
		})
	}
}

/*
TestAuthorize_UnknownLevelFailsClosed verifies that a level outside the known
enum values is always denied.
*/
func TestAuthorize_UnknownLevelFailsClosed(t *testing.T) {
	admin := &sec.Principal{UserID: "u-admin", Role: sec.RoleAdmin}

	decision := sec.Authorize(admin, sec.AccessLevel(99))

	assert.False(t, decision.Allowed)
	assert.Equal(t, sec.DenyForbidden, decision.Reason)
}

/*
TestAuthorize_UnknownRoleIsNotAdmin verifies that a principal carrying a role
outside the known set cannot pass the admin gate.
*/
func TestAuthorize_UnknownRoleIsNotAdmin(t *testing.T) {
	stranger := &sec.Principal{UserID: "u-x", Role: sec.UserRole("superuser")}

	decision := sec.Authorize(stranger, sec.LevelAdmin)

	assert.False(t, decision.Allowed)
	assert.Equal(t, sec.DenyForbidden, decision.Reason)
}

/*
TestUserRole_AtLeast covers the role hierarchy comparisons.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleUser))
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleAdmin))
	assert.True(t, sec.RoleUser.AtLeast(sec.RoleUser))
	assert.False(t, sec.RoleUser.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("").AtLeast(sec.RoleUser))
}
