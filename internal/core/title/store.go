// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import "context"

// Record is the writable part of a title as stored.
type Record struct {
	ID          int64
	Name        string
	Year        int
	Description string
	CategoryID  *int64
}

// Repository defines persistence for titles and their genre links.
type Repository interface {
	List(context context.Context, filter Filter) ([]*Title, int, error)

	// FindByID returns apperr.NotFound when the title does not exist.
	FindByID(context context.Context, id int64) (*Title, error)

	// Exists returns apperr.NotFound when the title does not exist.
	Exists(context context.Context, id int64) error

	// Create inserts the record and links it to genreIDs atomically.
	Create(context context.Context, record *Record, genreIDs []int64) error

	// Update rewrites the record. When genreIDs is non-nil the genre links
	// are replaced in the same transaction.
	Update(context context.Context, record *Record, genreIDs []int64) error

	Delete(context context.Context, id int64) error
}
