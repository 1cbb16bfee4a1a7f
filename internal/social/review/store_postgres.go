// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DBTX
}

// NewPostgresRepository creates a new review repository.
func NewPostgresRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	reviewTable  = schema.SocialReview
	accountTable = schema.UserAccount

	// selectReview reads a review with its author's username.
	selectReview = fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, a.%s, r.%s, r.%s, r.%s
		FROM %s r JOIN %s a ON a.%s = r.%s`,
		reviewTable.ID, reviewTable.TitleID, reviewTable.AuthorID, accountTable.Username,
		reviewTable.Text, reviewTable.Score, reviewTable.PubDate,
		reviewTable.Table, accountTable.Table, accountTable.ID, reviewTable.AuthorID,
	)
)

func scanReview(row pgx.Row) (*Review, error) {
	review := &Review{}
	err := row.Scan(
		&review.ID, &review.TitleID, &review.AuthorID, &review.Author,
		&review.Text, &review.Score, &review.PubDate,
	)
	if err != nil {
		return nil, err
	}
	return review, nil
}

/*
List returns one page of a title's reviews, newest first.

Parameters:
  - context: context.Context
  - titleID: int64
  - limit, offset: int

Returns:
  - []*Review: The page
  - int: Total reviews of the title
  - error: Database errors
*/
func (repository *PostgresRepository) List(context context.Context, titleID int64, limit, offset int) ([]*Review, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, reviewTable.Table, reviewTable.TitleID)
	if err := repository.db.QueryRow(context, countQuery, titleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	pageQuery := fmt.Sprintf(`%s WHERE r.%s = $1 ORDER BY r.%s DESC, r.%s DESC LIMIT $2 OFFSET $3`,
		selectReview, reviewTable.TitleID, reviewTable.PubDate, reviewTable.ID)

	rows, err := repository.db.Query(context, pageQuery, titleID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := make([]*Review, 0, limit)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	return reviews, total, nil
}

// FindByID retrieves a review under the given title.
func (repository *PostgresRepository) FindByID(context context.Context, titleID, id int64) (*Review, error) {
	query := fmt.Sprintf(`%s WHERE r.%s = $1 AND r.%s = $2`, selectReview, reviewTable.ID, reviewTable.TitleID)

	review, err := scanReview(repository.db.QueryRow(context, query, id, titleID))
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Review")
		}
		return nil, dberr.Wrap(err, "find_review")
	}
	return review, nil
}

// Create inserts a review.
func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s`,
		reviewTable.Table,
		reviewTable.TitleID, reviewTable.AuthorID, reviewTable.Text, reviewTable.Score,
		reviewTable.ID, reviewTable.PubDate,
	)

	err := repository.db.QueryRow(context, query,
		review.TitleID, review.AuthorID, review.Text, review.Score,
	).Scan(&review.ID, &review.PubDate)

	if err != nil {
		if dberr.IsUniqueViolation(err, reviewTable.AuthorTitleKey) {
			return err
		}
		return dberr.Wrap(err, "create_review")
	}
	return nil
}

// Update rewrites the text and score of a review.
func (repository *PostgresRepository) Update(context context.Context, review *Review) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		reviewTable.Table, reviewTable.Text, reviewTable.Score, reviewTable.ID)

	tag, err := repository.db.Exec(context, query, review.ID, review.Text, review.Score)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}

// Delete removes a review and, by cascade, its comments.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, reviewTable.Table, reviewTable.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}
