// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review manages the scored reviews users leave on titles.

Each user may review a title once. The limit is enforced by a unique
constraint so that concurrent submissions yield exactly one review.
*/
package review

import (
	"context"
	"time"
)

// # Domain Entities

// Review is a user's score and opinion of a title.
type Review struct {
	ID       int64 `json:"id"`
	TitleID  int64 `json:"-"`
	AuthorID int64 `json:"-"`

	// Author is the username of the reviewer
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

// CreateInput is the client payload for a new review.
type CreateInput struct {
	Text  string `json:"text"`
	Score *int   `json:"score"`
}

// UpdateInput holds a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// TitleChecker reports whether a title exists.
type TitleChecker interface {
	// Exists returns apperr.NotFound when the title does not exist.
	Exists(context context.Context, id int64) error
}

// # Field Identifiers

const (
	FieldText  = "text"
	FieldScore = "score"
)

// # Constraints

const (
	MinScore = 1
	MaxScore = 10
)

// DuplicateMessage is returned when a user reviews the same title twice.
const DuplicateMessage = "You have already reviewed this title"
