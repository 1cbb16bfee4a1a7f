// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account manages the user directory and the caller's own profile.

# Architecture

  - Domain: This package depends on the auth package for the [auth.User] entity and its repository.
  - Security: Every operation is gated by a policy from the sec package.
*/
package account

import (
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/internal/users/auth"
)

// # Inputs

// CreateUserInput is the admin-supplied payload for a new account.
type CreateUserInput struct {
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Bio       string       `json:"bio"`
	Role      sec.UserRole `json:"role"`
}

// UpdateUserInput holds a partial update; nil fields are left unchanged.
type UpdateUserInput struct {
	Username  *string       `json:"username"`
	Email     *string       `json:"email"`
	FirstName *string       `json:"first_name"`
	LastName  *string       `json:"last_name"`
	Bio       *string       `json:"bio"`
	Role      *sec.UserRole `json:"role"`
}

var roleNames = []string{string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin)}

// validateUser checks the fully merged account.
func validateUser(user *auth.User) error {
	validator := &validate.Validator{}
	auth.ValidateUsername(validator, user.Username)
	auth.ValidateEmail(validator, user.Email)
	validator.
		MaxLen(auth.FieldFirstName, user.FirstName, auth.NameMaxLen).
		MaxLen(auth.FieldLastName, user.LastName, auth.NameMaxLen).
		OneOf(auth.FieldRole, string(user.Role), roleNames...)
	return validator.Err()
}
