// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the signup handshake and bearer-token issuance.

A visitor posts a username and email, receives a short confirmation code by
mail, and trades that code for an access token. The same package owns the
[User] entity and its repository, which the account directory reuses.

# Architecture

  - Entity: [User], the "truth" of a registered identity.
  - Repository: [UserRepository] (Postgres) and [AttemptStore] (Redis).
  - Service: signup, token exchange and per-request token verification.
*/
package auth

import (
	"time"

	"github.com/taibuivan/yamdb/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of Yamdb.
type User struct {
	ID               int64        `json:"-"`
	Username         string       `json:"username"`
	Email            string       `json:"email"`
	FirstName        string       `json:"first_name"`
	LastName         string       `json:"last_name"`
	Bio              string       `json:"bio"`
	Role             sec.UserRole `json:"role"`
	ConfirmationCode string       `json:"-"`
	CreatedAt        time.Time    `json:"-"`
}

// UserFilter narrows a user listing.
type UserFilter struct {
	// Search is a case-insensitive substring of the username.
	Search string
	Limit  int
	Offset int
}

// # Field Identifiers

// Field names for validation in the identity domain.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldRole             = "role"
	FieldConfirmationCode = "confirmation_code"
)

// # Constraints

const (
	// ReservedUsername is the path segment that addresses the caller's own profile.
	ReservedUsername = "me"

	UsernameMaxLen = 150
	EmailMaxLen    = 254
	NameMaxLen     = 100
)
