// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import "context"

// Repository defines persistence for reviews. Lookups are scoped to a
// title so a review is only reachable under the title it belongs to.
type Repository interface {
	List(context context.Context, titleID int64, limit, offset int) ([]*Review, int, error)

	// FindByID returns apperr.NotFound when the review does not exist or
	// belongs to another title.
	FindByID(context context.Context, titleID, id int64) (*Review, error)

	// Create inserts the review and fills in ID and PubDate. A second
	// review by the same author is returned as the raw unique violation.
	Create(context context.Context, review *Review) error

	// Update rewrites text and score. The publication date never changes.
	Update(context context.Context, review *Review) error

	Delete(context context.Context, id int64) error
}
