// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import "context"

// Repository defines the persistence operations for one [Kind] of term.
type Repository interface {
	// List returns one page ordered newest first, plus the total match count.
	List(context context.Context, filter Filter) ([]*Term, int, error)

	// FindBySlug returns apperr.NotFound when the slug is unknown.
	FindBySlug(context context.Context, slug string) (*Term, error)

	// FindBySlugs returns the terms whose slug is in the list, in no
	// particular order. Unknown slugs are silently absent from the result.
	FindBySlugs(context context.Context, slugs []string) ([]*Term, error)

	// Create inserts the term. A duplicate slug is returned as the raw
	// unique violation.
	Create(context context.Context, term *Term) error

	Delete(context context.Context, slug string) error
}
