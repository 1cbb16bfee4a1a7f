// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comment manages the discussion threads under reviews.
package comment

import (
	"context"
	"time"

	"github.com/taibuivan/yamdb/internal/social/review"
)

// Comment is a reply to a review.
type Comment struct {
	ID       int64 `json:"id"`
	ReviewID int64 `json:"-"`
	AuthorID int64 `json:"-"`

	// Author is the username of the commenter
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
}

// Input is the client payload for creating or editing a comment.
type Input struct {
	Text *string `json:"text"`
}

// ReviewFinder locates a review under its title.
type ReviewFinder interface {
	// FindByID returns apperr.NotFound when the review does not exist or
	// belongs to another title.
	FindByID(context context.Context, titleID, id int64) (*review.Review, error)
}

// FieldText is the only client-writable field.
const FieldText = "text"
