// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "context"

// Repository defines persistence for comments, scoped to their review.
type Repository interface {
	List(context context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error)

	// FindByID returns apperr.NotFound when the comment does not exist or
	// belongs to another review.
	FindByID(context context.Context, reviewID, id int64) (*Comment, error)

	// Create inserts the comment and fills in ID and PubDate.
	Create(context context.Context, comment *Comment) error

	// Update rewrites the text. The publication date never changes.
	Update(context context.Context, comment *Comment) error

	Delete(context context.Context, id int64) error
}
