// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/auth"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

// # Service Layer

// Service orchestrates the user directory.
type Service struct {
	userRepository auth.UserRepository
	newCode        func() (string, error)
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(userRepo auth.UserRepository) *Service {
	return &Service{userRepository: userRepo, newCode: auth.NewConfirmationCode}
}

// # Directory (admin)

/*
List returns one page of accounts.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - filter: auth.UserFilter

Returns:
  - []*auth.User: The page
  - int: Total matches
  - error: Unauthorized, Forbidden or storage failures
*/
func (service *Service) List(context context.Context, actor *sec.Actor, filter auth.UserFilter) ([]*auth.User, int, error) {
	if err := sec.SelfOrAdmin(actor, sec.ActionList, 0); err != nil {
		return nil, 0, err
	}
	return service.userRepository.List(context, filter)
}

/*
Create registers an account on behalf of an admin.

Description: The account receives a confirmation code, so the user can later
complete the normal signup handshake with the same username and email.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - input: CreateUserInput

Returns:
  - *auth.User: The persisted account
  - error: Policy, validation or uniqueness failures
*/
func (service *Service) Create(context context.Context, actor *sec.Actor, input CreateUserInput) (*auth.User, error) {
	if err := sec.SelfOrAdmin(actor, sec.ActionCreate, 0); err != nil {
		return nil, err
	}

	user := &auth.User{
		Username:  strings.TrimSpace(input.Username),
		Email:     strings.TrimSpace(input.Email),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	}
	if user.Role == "" {
		user.Role = sec.RoleUser
	}

	if err := validateUser(user); err != nil {
		return nil, err
	}

	code, err := service.newCode()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	user.ConfirmationCode = code

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, dberr.Wrap(err, "account_create_user")
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_created",
		slog.Int64("user_id", user.ID), slog.String("role", string(user.Role)))
	return user, nil
}

// Get returns the account addressed by username.
func (service *Service) Get(context context.Context, actor *sec.Actor, username string) (*auth.User, error) {
	return service.load(context, actor, sec.ActionRead, username)
}

/*
Update applies a partial change to the account addressed by username.

Description: The role is only changed when the actor may assign roles; for
anyone else it is ignored.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - username: string
  - input: UpdateUserInput

Returns:
  - *auth.User: The updated account
  - error: Policy, validation or uniqueness failures
*/
func (service *Service) Update(context context.Context, actor *sec.Actor, username string, input UpdateUserInput) (*auth.User, error) {
	user, err := service.load(context, actor, sec.ActionUpdate, username)
	if err != nil {
		return nil, err
	}

	if !sec.CanAssignRole(actor) {
		input.Role = nil
	}
	return service.apply(context, user, input)
}

// Delete removes the account addressed by username.
func (service *Service) Delete(context context.Context, actor *sec.Actor, username string) error {
	if err := sec.SelfOrAdmin(actor, sec.ActionDelete, 0); err != nil {
		return err
	}

	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		return err
	}

	if err := service.userRepository.Delete(context, user.ID); err != nil {
		return err
	}

	ctxutil.GetLogger(context).WarnContext(context, "user_deleted", slog.Int64("user_id", user.ID))
	return nil
}

// load resolves the account addressed by username for actor. A non-admin
// naming someone else is refused before the lookup, so the answer is the same
// whether or not that username exists.
func (service *Service) load(context context.Context, actor *sec.Actor, action sec.Action, username string) (*auth.User, error) {
	if err := sec.Authenticated(actor); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.Username != username {
		return nil, sec.SelfOrAdmin(actor, action, 0)
	}

	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	if err := sec.SelfOrAdmin(actor, action, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// # Own Profile

// Me returns the caller's own account.
func (service *Service) Me(context context.Context, actor *sec.Actor) (*auth.User, error) {
	if err := sec.Authenticated(actor); err != nil {
		return nil, err
	}
	return service.userRepository.FindByID(context, actor.ID)
}

// UpdateMe applies a partial change to the caller's own account. The role
// is read-only here for every caller, admins included.
func (service *Service) UpdateMe(context context.Context, actor *sec.Actor, input UpdateUserInput) (*auth.User, error) {
	if err := sec.Authenticated(actor); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByID(context, actor.ID)
	if err != nil {
		return nil, err
	}

	input.Role = nil
	return service.apply(context, user, input)
}

// apply merges input into user, validates the result and persists it.
func (service *Service) apply(context context.Context, user *auth.User, input UpdateUserInput) (*auth.User, error) {
	if input.Username != nil {
		input.Username = pointer.To(strings.TrimSpace(*input.Username))
	}
	if input.Email != nil {
		input.Email = pointer.To(strings.TrimSpace(*input.Email))
	}

	pointer.Assign(&user.Username, input.Username)
	pointer.Assign(&user.Email, input.Email)
	pointer.Assign(&user.FirstName, input.FirstName)
	pointer.Assign(&user.LastName, input.LastName)
	pointer.Assign(&user.Bio, input.Bio)
	pointer.Assign(&user.Role, input.Role)

	if err := validateUser(user); err != nil {
		return nil, err
	}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, dberr.Wrap(err, "account_update_user")
	}
	return user, nil
}
