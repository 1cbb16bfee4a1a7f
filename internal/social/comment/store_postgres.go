// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

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

// NewPostgresRepository creates a new comment repository.
func NewPostgresRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	commentTable = schema.SocialComment
	accountTable = schema.UserAccount

	selectComment = fmt.Sprintf(`
		SELECT m.%s, m.%s, m.%s, a.%s, m.%s, m.%s
		FROM %s m JOIN %s a ON a.%s = m.%s`,
		commentTable.ID, commentTable.ReviewID, commentTable.AuthorID, accountTable.Username,
		commentTable.Text, commentTable.PubDate,
		commentTable.Table, accountTable.Table, accountTable.ID, commentTable.AuthorID,
	)
)

func scanComment(row pgx.Row) (*Comment, error) {
	comment := &Comment{}
	err := row.Scan(
		&comment.ID, &comment.ReviewID, &comment.AuthorID, &comment.Author,
		&comment.Text, &comment.PubDate,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// List returns one page of a review's comments, oldest first.
func (repository *PostgresRepository) List(context context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, commentTable.Table, commentTable.ReviewID)
	if err := repository.db.QueryRow(context, countQuery, reviewID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_comments")
	}

	pageQuery := fmt.Sprintf(`%s WHERE m.%s = $1 ORDER BY m.%s, m.%s LIMIT $2 OFFSET $3`,
		selectComment, commentTable.ReviewID, commentTable.PubDate, commentTable.ID)

	rows, err := repository.db.Query(context, pageQuery, reviewID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0, limit)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	return comments, total, nil
}

// FindByID retrieves a comment under the given review.
func (repository *PostgresRepository) FindByID(context context.Context, reviewID, id int64) (*Comment, error) {
	query := fmt.Sprintf(`%s WHERE m.%s = $1 AND m.%s = $2`, selectComment, commentTable.ID, commentTable.ReviewID)

	comment, err := scanComment(repository.db.QueryRow(context, query, id, reviewID))
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, dberr.Wrap(err, "find_comment")
	}
	return comment, nil
}

// Create inserts a comment.
func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s`,
		commentTable.Table,
		commentTable.ReviewID, commentTable.AuthorID, commentTable.Text,
		commentTable.ID, commentTable.PubDate,
	)

	err := repository.db.QueryRow(context, query,
		comment.ReviewID, comment.AuthorID, comment.Text,
	).Scan(&comment.ID, &comment.PubDate)
	return dberr.Wrap(err, "create_comment")
}

// Update rewrites the comment text.
func (repository *PostgresRepository) Update(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		commentTable.Table, commentTable.Text, commentTable.ID)

	tag, err := repository.db.Exec(context, query, comment.ID, comment.Text)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}

// Delete removes a comment.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, commentTable.Table, commentTable.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}
