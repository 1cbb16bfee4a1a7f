// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "github.com/taibuivan/yamdb/internal/platform/apperr"

// Actor is the identity a policy decision is made for. A nil *Actor is an
// anonymous caller.
type Actor struct {
	ID       int64
	Username string
	Role     UserRole
}

// IsAdmin reports whether the actor holds the admin role.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role.AtLeast(RoleAdmin)
}

// IsStaff reports whether the actor is a moderator or an admin.
func (a *Actor) IsStaff() bool {
	return a != nil && a.Role.AtLeast(RoleModerator)
}

// Actor converts verified claims into a policy [Actor].
func (c *AuthClaims) Actor() *Actor {
	if c == nil {
		return nil
	}
	return &Actor{ID: c.UserID, Username: c.Username, Role: UserRole(c.Role)}
}

// Action is the kind of operation being authorized.
type Action int

const (
	ActionRead Action = iota
	ActionList
	ActionCreate
	ActionUpdate
	ActionDelete
)

// Safe reports whether the action only reads data.
func (a Action) Safe() bool {
	return a == ActionRead || a == ActionList
}

// # Policies
//
// Every policy returns nil when the actor may proceed. A denial is a 401
// for anonymous callers and a 403 for everyone else.

// Authenticated allows any signed-in user.
func Authenticated(actor *Actor) error {
	if actor == nil {
		return apperr.Unauthorized("Authentication credentials were not provided")
	}
	return nil
}

// AdminOrReadOnly lets anyone read and only admins write.
func AdminOrReadOnly(actor *Actor, action Action) error {
	if action.Safe() {
		return nil
	}
	if err := Authenticated(actor); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return apperr.Forbidden("Only administrators may modify this resource")
	}
	return nil
}

// AuthorOrStaffOrReadOnly lets anyone read, any signed-in user create, and
// only the author or staff update and delete.
func AuthorOrStaffOrReadOnly(actor *Actor, action Action, authorID int64) error {
	if action.Safe() {
		return nil
	}
	if err := Authenticated(actor); err != nil {
		return err
	}
	if action == ActionCreate || actor.ID == authorID || actor.IsStaff() {
		return nil
	}
	return apperr.Forbidden("You do not have permission to modify this resource")
}

// SelfOrAdmin governs the user directory. Listing, creating and deleting
// accounts is admin-only. Reading or updating an account is allowed for the
// account owner and for admins.
func SelfOrAdmin(actor *Actor, action Action, targetID int64) error {
	if err := Authenticated(actor); err != nil {
		return err
	}
	if actor.IsAdmin() {
		return nil
	}
	switch action {
	case ActionRead, ActionUpdate:
		if actor.ID == targetID {
			return nil
		}
	}
	return apperr.Forbidden("You do not have permission to perform this action")
}

// CanAssignRole reports whether the actor may change a user's role.
func CanAssignRole(actor *Actor) bool {
	return actor.IsAdmin()
}
