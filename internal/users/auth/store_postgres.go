// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	db postgres.DBTX
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(db postgres.DBTX) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

var (
	userTable = schema.UserAccount

	// selectUser reads every column of [User] with nullable names flattened.
	selectUser = fmt.Sprintf(`
		SELECT %s, %s, %s, COALESCE(%s, ''), COALESCE(%s, ''), %s, %s, %s, %s
		FROM %s`,
		userTable.ID, userTable.Username, userTable.Email, userTable.FirstName, userTable.LastName,
		userTable.Bio, userTable.Role, userTable.ConfirmationCode, userTable.CreatedAt,
		userTable.Table,
	)
)

// scanUser hydrates a [User] from a row produced by selectUser.
func scanUser(row interface{ Scan(dest ...any) error }) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName,
		&user.Bio, &user.Role, &user.ConfirmationCode, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// findBy loads one account where column equals value.
func (repository *PostgresUserRepository) findBy(context context.Context, column string, value any) (*User, error) {
	query := fmt.Sprintf(`%s WHERE %s = $1`, selectUser, column)

	user, err := scanUser(repository.db.QueryRow(context, query, value))
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "find_user_by_"+column)
	}
	return user, nil
}

// FindByID retrieves a user record by primary key.
func (repository *PostgresUserRepository) FindByID(context context.Context, id int64) (*User, error) {
	return repository.findBy(context, userTable.ID, id)
}

// FindByEmail retrieves a user record by their unique email address.
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findBy(context, userTable.Email, email)
}

// FindByUsername retrieves a user record by their unique username.
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findBy(context, userTable.Username, username)
}

/*
List returns one page of accounts and the total number of matches.

Description: The optional search term matches usernames case-insensitively.

Parameters:
  - context: context.Context
  - filter: UserFilter

Returns:
  - []*User: Page ordered by username
  - int: Total count
  - error: Database errors
*/
func (repository *PostgresUserRepository) List(context context.Context, filter UserFilter) ([]*User, int, error) {
	var (
		where     string
		arguments []any
	)
	if search := strings.TrimSpace(filter.Search); search != "" {
		where = fmt.Sprintf(` WHERE %s ILIKE $1`, userTable.Username)
		arguments = append(arguments, postgres.ContainsPattern(search))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, userTable.Table, where)
	if err := repository.db.QueryRow(context, countQuery, arguments...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_users")
	}

	pageQuery := fmt.Sprintf(`%s%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		selectUser, where, userTable.Username, len(arguments)+1, len(arguments)+2)

	rows, err := repository.db.Query(context, pageQuery, append(arguments, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	users := make([]*User, 0, filter.Limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_user")
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}
	return users, total, nil
}

/*
Create persists a new user record into the users.account table.

Parameters:
  - context: context.Context
  - user: *User (ID and CreatedAt are filled in)

Returns:
  - error: Unique violations are returned raw so callers can inspect the constraint
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7)
		RETURNING %s, %s`,
		userTable.Table,
		userTable.Username, userTable.Email, userTable.FirstName, userTable.LastName,
		userTable.Bio, userTable.Role, userTable.ConfirmationCode,
		userTable.ID, userTable.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		user.Username, user.Email, user.FirstName, user.LastName,
		user.Bio, user.Role, user.ConfirmationCode,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if dberr.IsUniqueViolation(err, "") {
			return err
		}
		return dberr.Wrap(err, "create_user")
	}
	return nil
}

// Update rewrites every mutable column of the account.
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NULLIF($4, ''), %s = NULLIF($5, ''), %s = $6, %s = $7, %s = $8
		WHERE %s = $1`,
		userTable.Table,
		userTable.Username, userTable.Email, userTable.FirstName, userTable.LastName,
		userTable.Bio, userTable.Role, userTable.ConfirmationCode,
		userTable.ID,
	)

	tag, err := repository.db.Exec(context, query,
		user.ID, user.Username, user.Email, user.FirstName, user.LastName,
		user.Bio, user.Role, user.ConfirmationCode,
	)
	if err != nil {
		return dberr.Wrap(err, "update_user")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

// Delete removes the account row.
func (repository *PostgresUserRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, userTable.Table, userTable.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}
