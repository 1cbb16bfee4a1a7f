// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		List returns one page of accounts ordered by username, and the total match count.

		Parameters:
		  - context: context.Context
		  - filter: UserFilter

		Returns:
		  - []*User: The page
		  - int: Total rows matching the filter
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter UserFilter) ([]*User, int, error)

	/*
		Create persists a brand-new user account and fills in its ID.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Unique violations (username/email) or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists every mutable profile field, including the role.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.NotFound, unique violations or persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		Delete removes the account and, by cascade, its reviews and comments.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Delete(context context.Context, id int64) error
}

// # Volatile Data Access

// AttemptStore counts failed confirmation-code exchanges per username.
type AttemptStore interface {

	// Count returns the failures recorded in the current window.
	Count(context context.Context, username string) (int, error)

	// Increment records one failure; the first failure opens a window of length window.
	Increment(context context.Context, username string, window time.Duration) (int, error)

	// Reset forgets every recorded failure for the username.
	Reset(context context.Context, username string) error
}
