// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/yamdb/internal/core/taxonomy"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Conn
}

// NewPostgresRepository creates a new title repository.
func NewPostgresRepository(db postgres.Conn) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	titleTable    = schema.CoreTitle
	linkTable     = schema.CoreTitleGenre
	categoryTable = schema.CoreCategory
	genreTable    = schema.CoreGenre
	reviewTable   = schema.SocialReview

	// fromTitle joins the optional category so filters can address its slug.
	fromTitle = fmt.Sprintf(`FROM %s t LEFT JOIN %s c ON c.%s = t.%s`,
		titleTable.Table, categoryTable.Table, categoryTable.ID, titleTable.CategoryID)

	// selectTitle reads a title with its category and average review score.
	selectTitle = fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s,
		       (SELECT AVG(r.%s)::float8 FROM %s r WHERE r.%s = t.%s),
		       c.%s, c.%s, c.%s
		%s`,
		titleTable.ID, titleTable.Name, titleTable.Year, titleTable.Description,
		reviewTable.Score, reviewTable.Table, reviewTable.TitleID, titleTable.ID,
		categoryTable.ID, categoryTable.Name, categoryTable.Slug,
		fromTitle,
	)
)

// scanTitle hydrates a [Title] row produced by selectTitle.
func scanTitle(row pgx.Row) (*Title, error) {
	var (
		title        = &Title{Genre: []*taxonomy.Term{}}
		categoryID   *int64
		categoryName *string
		categorySlug *string
	)

	err := row.Scan(
		&title.ID, &title.Name, &title.Year, &title.Description, &title.Rating,
		&categoryID, &categoryName, &categorySlug,
	)
	if err != nil {
		return nil, err
	}

	if categoryID != nil {
		title.Category = &taxonomy.Term{ID: *categoryID, Name: *categoryName, Slug: *categorySlug}
	}
	return title, nil
}

// whereClause renders the filter as SQL conditions with positional arguments.
func whereClause(filter Filter) (string, []any) {
	var (
		conditions []string
		arguments  []any
	)
	add := func(condition string, argument any) {
		arguments = append(arguments, argument)
		conditions = append(conditions, fmt.Sprintf(condition, len(arguments)))
	}

	if name := strings.TrimSpace(filter.Name); name != "" {
		add(`t.`+titleTable.Name+` ILIKE $%d`, postgres.ContainsPattern(name))
	}
	if filter.Year != nil {
		add(`t.`+titleTable.Year+` = $%d`, *filter.Year)
	}
	if filter.Category != "" {
		add(`c.`+categoryTable.Slug+` = $%d`, filter.Category)
	}
	if filter.Genre != "" {
		add(fmt.Sprintf(`EXISTS (
			SELECT 1 FROM %s tg JOIN %s g ON g.%s = tg.%s
			WHERE tg.%s = t.%s AND g.%s = $%%d)`,
			linkTable.Table, genreTable.Table, genreTable.ID, linkTable.GenreID,
			linkTable.TitleID, titleTable.ID, genreTable.Slug,
		), filter.Genre)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), arguments
}

/*
List returns one page of titles with their genres and the total match count.

Description: Titles are read in one query and their genres in a second
query keyed by the page's IDs.

Parameters:
  - context: context.Context
  - filter: Filter

Returns:
  - []*Title: Page ordered by id descending
  - int: Total count
  - error: Database errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter) ([]*Title, int, error) {
	where, arguments := whereClause(filter)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) %s%s`, fromTitle, where)
	if err := repository.db.QueryRow(context, countQuery, arguments...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_titles")
	}

	pageQuery := fmt.Sprintf(`%s%s ORDER BY t.%s DESC LIMIT $%d OFFSET $%d`,
		selectTitle, where, titleTable.ID, len(arguments)+1, len(arguments)+2)

	rows, err := repository.db.Query(context, pageQuery, append(arguments, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	defer rows.Close()

	titles := make([]*Title, 0, filter.Limit)
	for rows.Next() {
		title, err := scanTitle(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_title")
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	rows.Close()

	if err := repository.attachGenres(context, titles); err != nil {
		return nil, 0, err
	}
	return titles, total, nil
}

// attachGenres loads the genres of every title in one round trip.
func (repository *PostgresRepository) attachGenres(context context.Context, titles []*Title) error {
	if len(titles) == 0 {
		return nil
	}

	ids := make([]int64, len(titles))
	byID := make(map[int64]*Title, len(titles))
	for i, title := range titles {
		ids[i] = title.ID
		byID[title.ID] = title
	}

	query := fmt.Sprintf(`
		SELECT tg.%s, g.%s, g.%s, g.%s
		FROM %s tg JOIN %s g ON g.%s = tg.%s
		WHERE tg.%s = ANY($1)
		ORDER BY g.%s`,
		linkTable.TitleID, genreTable.ID, genreTable.Name, genreTable.Slug,
		linkTable.Table, genreTable.Table, genreTable.ID, linkTable.GenreID,
		linkTable.TitleID,
		genreTable.Name,
	)

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "list_title_genres")
	}
	defer rows.Close()

	for rows.Next() {
		var titleID int64
		genre := &taxonomy.Term{}
		if err := rows.Scan(&titleID, &genre.ID, &genre.Name, &genre.Slug); err != nil {
			return dberr.Wrap(err, "scan_title_genre")
		}
		if title, ok := byID[titleID]; ok {
			title.Genre = append(title.Genre, genre)
		}
	}
	return dberr.Wrap(rows.Err(), "list_title_genres")
}

// FindByID retrieves one title with its genres and rating.
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Title, error) {
	query := fmt.Sprintf(`%s WHERE t.%s = $1`, selectTitle, titleTable.ID)

	title, err := scanTitle(repository.db.QueryRow(context, query, id))
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Title")
		}
		return nil, dberr.Wrap(err, "find_title")
	}

	if err := repository.attachGenres(context, []*Title{title}); err != nil {
		return nil, err
	}
	return title, nil
}

// Exists checks that the title row is present.
func (repository *PostgresRepository) Exists(context context.Context, id int64) error {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, titleTable.Table, titleTable.ID)

	var found bool
	if err := repository.db.QueryRow(context, query, id).Scan(&found); err != nil {
		return dberr.Wrap(err, "title_exists")
	}
	if !found {
		return apperr.NotFound("Title")
	}
	return nil
}

/*
Create inserts the title row and its genre links in one transaction.

Parameters:
  - context: context.Context
  - record: *Record (ID is filled in)
  - genreIDs: []int64

Returns:
  - error: Database errors; the transaction is rolled back on any failure
*/
func (repository *PostgresRepository) Create(context context.Context, record *Record, genreIDs []int64) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`,
		titleTable.Table,
		titleTable.Name, titleTable.Year, titleTable.Description, titleTable.CategoryID,
		titleTable.ID,
	)

	err := postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(context, query,
			record.Name, record.Year, record.Description, record.CategoryID,
		).Scan(&record.ID)
		if err != nil {
			return err
		}
		return linkGenres(context, tx, record.ID, genreIDs)
	})
	return dberr.Wrap(err, "create_title")
}

// Update rewrites the title row and, when requested, its genre links.
func (repository *PostgresRepository) Update(context context.Context, record *Record, genreIDs []int64) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1`,
		titleTable.Table,
		titleTable.Name, titleTable.Year, titleTable.Description, titleTable.CategoryID,
		titleTable.ID,
	)
	unlink := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, linkTable.Table, linkTable.TitleID)

	err := postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(context, query,
			record.ID, record.Name, record.Year, record.Description, record.CategoryID,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("Title")
		}

		if genreIDs == nil {
			return nil
		}
		if _, err := tx.Exec(context, unlink, record.ID); err != nil {
			return err
		}
		return linkGenres(context, tx, record.ID, genreIDs)
	})
	return dberr.Wrap(err, "update_title")
}

// linkGenres inserts one titlegenre row per genre.
func linkGenres(context context.Context, tx pgx.Tx, titleID int64, genreIDs []int64) error {
	if len(genreIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		SELECT $1, UNNEST($2::bigint[])
		ON CONFLICT DO NOTHING`,
		linkTable.Table, linkTable.TitleID, linkTable.GenreID,
	)

	_, err := tx.Exec(context, query, titleID, genreIDs)
	return err
}

// Delete removes the title. Reviews, comments and genre links cascade.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, titleTable.Table, titleTable.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_title")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}
	return nil
}
