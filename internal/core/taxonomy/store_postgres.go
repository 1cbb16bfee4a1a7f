// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
)

// PostgresRepository implements [Repository] over one taxonomy table.
type PostgresRepository struct {
	db   postgres.DBTX
	kind Kind
}

// NewPostgresRepository creates a repository for the given kind.
func NewPostgresRepository(db postgres.DBTX, kind Kind) *PostgresRepository {
	return &PostgresRepository{db: db, kind: kind}
}

// selectTerm reads the columns of [Term].
func (repository *PostgresRepository) selectTerm() string {
	table := repository.kind.Table
	return fmt.Sprintf(`SELECT %s, %s, %s FROM %s`, table.ID, table.Name, table.Slug, table.Table)
}

// collect drains rows into terms.
func collect(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}, capacity int) ([]*Term, error) {
	terms := make([]*Term, 0, capacity)
	for rows.Next() {
		term := &Term{}
		if err := rows.Scan(&term.ID, &term.Name, &term.Slug); err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	return terms, rows.Err()
}

/*
List returns one page of terms and the total number of matches.

Parameters:
  - context: context.Context
  - filter: Filter

Returns:
  - []*Term: Page ordered by id descending
  - int: Total count
  - error: Database errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter) ([]*Term, int, error) {
	table := repository.kind.Table

	var (
		where     string
		arguments []any
	)
	if search := strings.TrimSpace(filter.Search); search != "" {
		where = fmt.Sprintf(` WHERE %s ILIKE $1`, table.Name)
		arguments = append(arguments, postgres.ContainsPattern(search))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, table.Table, where)
	if err := repository.db.QueryRow(context, countQuery, arguments...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_"+table.Table)
	}

	pageQuery := fmt.Sprintf(`%s%s ORDER BY %s DESC LIMIT $%d OFFSET $%d`,
		repository.selectTerm(), where, table.ID, len(arguments)+1, len(arguments)+2)

	rows, err := repository.db.Query(context, pageQuery, append(arguments, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_"+table.Table)
	}
	defer rows.Close()

	terms, err := collect(rows, filter.Limit)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "scan_"+table.Table)
	}
	return terms, total, nil
}

// FindBySlug retrieves one term by its slug.
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Term, error) {
	query := fmt.Sprintf(`%s WHERE %s = $1`, repository.selectTerm(), repository.kind.Table.Slug)

	term := &Term{}
	err := repository.db.QueryRow(context, query, slug).Scan(&term.ID, &term.Name, &term.Slug)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound(repository.kind.Resource)
		}
		return nil, dberr.Wrap(err, "find_"+repository.kind.Table.Table)
	}
	return term, nil
}

// FindBySlugs retrieves every term whose slug is listed.
func (repository *PostgresRepository) FindBySlugs(context context.Context, slugs []string) ([]*Term, error) {
	if len(slugs) == 0 {
		return []*Term{}, nil
	}

	query := fmt.Sprintf(`%s WHERE %s = ANY($1)`, repository.selectTerm(), repository.kind.Table.Slug)

	rows, err := repository.db.Query(context, query, slugs)
	if err != nil {
		return nil, dberr.Wrap(err, "find_many_"+repository.kind.Table.Table)
	}
	defer rows.Close()

	terms, err := collect(rows, len(slugs))
	if err != nil {
		return nil, dberr.Wrap(err, "scan_"+repository.kind.Table.Table)
	}
	return terms, nil
}

// Create inserts a term and fills in its ID.
func (repository *PostgresRepository) Create(context context.Context, term *Term) error {
	table := repository.kind.Table
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		table.Table, table.Name, table.Slug, table.ID)

	err := repository.db.QueryRow(context, query, term.Name, term.Slug).Scan(&term.ID)
	if err != nil {
		if dberr.IsUniqueViolation(err, table.SlugKey) {
			return err
		}
		return dberr.Wrap(err, "create_"+table.Table)
	}
	return nil
}

// Delete removes a term by slug. Titles referencing it keep existing.
func (repository *PostgresRepository) Delete(context context.Context, slug string) error {
	table := repository.kind.Table
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.Slug)

	tag, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_"+table.Table)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(repository.kind.Resource)
	}
	return nil
}
