// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package title manages the catalogue of rated works (books, films, music).

A title belongs to at most one category and to any number of genres. Its
rating is the mean review score, computed on read and never stored.

# Architecture

  - Entity: [Title], read with its category, genres and rating.
  - Repository: [Repository] backed by Postgres; genre links are written in
    the same transaction as the title row.
  - Service: public reads, admin-only writes. Category and genre slugs are
    resolved through the taxonomy repositories.
*/
package title

import (
	"github.com/taibuivan/yamdb/internal/core/taxonomy"
)

// # Domain Entities

// Title is a work that users review.
type Title struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Rating      *float64 `json:"rating"`

	Category *taxonomy.Term   `json:"category"`
	Genre    []*taxonomy.Term `json:"genre"`
}

// Filter narrows a title listing. Every set field must match.
type Filter struct {
	// Name is a case-insensitive substring of the title name
	Name string
	Year *int

	// Category and Genre are exact slugs
	Category string
	Genre    string

	Limit  int
	Offset int
}

// # Inputs

// CreateInput is the admin payload for a new title.
type CreateInput struct {
	Name        string   `json:"name"`
	Year        *int     `json:"year"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

// UpdateInput holds a partial update. A nil field is left unchanged; an
// empty category string detaches the category, an empty genre list clears
// every genre.
type UpdateInput struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

// # Field Identifiers

const (
	FieldName     = "name"
	FieldYear     = "year"
	FieldCategory = "category"
	FieldGenre    = "genre"
)

// NameMaxLen is the width of the name column.
const NameMaxLen = 100
