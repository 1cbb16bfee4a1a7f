// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package taxonomy manages the flat name/slug lookups that classify titles.

Categories and genres share one shape and one set of rules, so a single
implementation serves both. A [Kind] selects the backing table.

# Architecture

  - Entity: [Term], a name addressed by its unique slug.
  - Repository: [Repository] backed by Postgres, one instance per [Kind].
  - Service: listing for everyone, create and delete for admins.
*/
package taxonomy

import "github.com/taibuivan/yamdb/internal/platform/database/schema"

// # Domain Entities

// Term is a category or a genre.
type Term struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Kind binds a resource name to its storage table.
type Kind struct {
	// Resource is the human-readable name used in error messages
	Resource string
	Table    schema.TaxonomyTable
}

var (
	Category = Kind{Resource: "Category", Table: schema.CoreCategory}
	Genre    = Kind{Resource: "Genre", Table: schema.CoreGenre}
)

// Filter narrows a listing.
type Filter struct {
	// Search is a case-insensitive substring of the name.
	Search string
	Limit  int
	Offset int
}

// CreateInput is the payload accepted when creating a term.
type CreateInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// # Field Identifiers

const (
	FieldName = "name"
	FieldSlug = "slug"
)

// # Constraints

const (
	NameMaxLen = 256
	SlugMaxLen = 50
)
