// Copyright (c) 2026 Vireel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema centralizes table and column identifiers for SQL composition.
//
// Keeping identifiers here (instead of string literals scattered across
// repositories) makes renames a one-file change and keeps queries greppable.
package schema

// UsersAccountTable represents the 'users.account' table
type UsersAccountTable struct {
	Table        string
	ID           string
	Email        string
	PasswordHash string
	DisplayName  string
	AvatarURL    string
	Role         string
	CreatedAt    string
	UpdatedAt    string
}

// UsersAccount is the schema definition for users.account
var UsersAccount = UsersAccountTable{
	Table:        "users.account",
	ID:           "id",
	Email:        "email",
	PasswordHash: "passwordhash",
	DisplayName:  "displayname",
	AvatarURL:    "avatarurl",
	Role:         "role",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t UsersAccountTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.PasswordHash, t.DisplayName, t.AvatarURL,
		t.Role, t.CreatedAt, t.UpdatedAt,
	}
}
