// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Classification
//
//   - pgx.ErrNoRows becomes [ErrNotFound].
//   - 23505 unique_violation becomes a field-level validation error on the
//     duplicated column.
//   - 23503 foreign_key_violation and 23514 check_violation become validation errors.
//   - Everything else is an internal error whose cause is logged, never returned.
package dberr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")

	// detailKey extracts the column list from "Key (slug)=(rock) already exists."
	detailKey = regexp.MustCompile(`^Key \(([^)]+)\)=`)

	// fieldNames maps foreign-key columns to the JSON field a client sent.
	fieldNames = map[string]string{
		"categoryid": "category",
		"genreid":    "genre",
		"titleid":    "title",
		"reviewid":   "review",
		"authorid":   "author",
		"firstname":  "first_name",
		"lastname":   "last_name",
	}
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Errors already classified upstream pass through untouched
	if apperr.IsAppError(err) {
		return err
	}

	// 2. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 3. Constraint violations are client errors
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		column := violatedColumn(pgError)

		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			if column == "" {
				return apperr.Conflict("Record already exists")
			}
			return apperr.FieldInvalid(column, fmt.Sprintf("A record with this %s already exists", column))

		case pgerrcode.ForeignKeyViolation:
			if column == "" {
				return apperr.ValidationError("Referenced resource does not exist")
			}
			return apperr.FieldInvalid(column, "Referenced resource does not exist")

		case pgerrcode.CheckViolation, pgerrcode.StringDataRightTruncationDataException:
			return apperr.ValidationError("Value is out of the allowed range")
		}
	}

	// 4. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// IsNotFound reports whether err is the not-found classification.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolation reports whether err is a 23505 on the named constraint.
// An empty constraint matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	var pgError *pgconn.PgError
	if !errors.As(err, &pgError) || pgError.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgError.ConstraintName == constraint
}

// violatedColumn returns the single column named in the error detail, or ""
// when the constraint spans several columns.
func violatedColumn(pgError *pgconn.PgError) string {
	match := detailKey.FindStringSubmatch(pgError.Detail)
	if match == nil || strings.Contains(match[1], ",") {
		return ""
	}
	if field, ok := fieldNames[match[1]]; ok {
		return field
	}
	return match[1]
}
