// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/slug"
)

// # Service Layer

// Service handles the business logic for one [Kind] of term.
type Service struct {
	repository Repository
	kind       Kind
}

// NewService constructs a new [Service].
func NewService(repository Repository, kind Kind) *Service {
	return &Service{repository: repository, kind: kind}
}

// List returns one page of terms. Listing is public.
func (service *Service) List(context context.Context, filter Filter) ([]*Term, int, error) {
	return service.repository.List(context, filter)
}

/*
Create adds a new term.

Description: When the slug is omitted it is derived from the name. A slug
already in use is reported as a field error on "slug".

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - input: CreateInput

Returns:
  - *Term: The persisted term
  - error: Policy, validation or uniqueness failures
*/
func (service *Service) Create(context context.Context, actor *sec.Actor, input CreateInput) (*Term, error) {
	if err := sec.AdminOrReadOnly(actor, sec.ActionCreate); err != nil {
		return nil, err
	}

	term := &Term{
		Name: strings.TrimSpace(input.Name),
		Slug: strings.TrimSpace(input.Slug),
	}
	if term.Slug == "" {
		term.Slug = deriveSlug(term.Name)
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldName, term.Name).
		MaxLen(FieldName, term.Name, NameMaxLen).
		Required(FieldSlug, term.Slug)
	if term.Slug != "" {
		validator.
			MaxLen(FieldSlug, term.Slug, SlugMaxLen).
			Slug(FieldSlug, term.Slug)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repository.Create(context, term); err != nil {
		if dberr.IsUniqueViolation(err, service.kind.Table.SlugKey) {
			return nil, apperr.FieldInvalid(FieldSlug, service.kind.Resource+" with this slug already exists")
		}
		return nil, dberr.Wrap(err, "taxonomy_create")
	}

	ctxutil.GetLogger(context).InfoContext(context, "taxonomy_term_created",
		slog.String("kind", service.kind.Resource), slog.String("slug", term.Slug))
	return term, nil
}

// Delete removes the term addressed by slug.
func (service *Service) Delete(context context.Context, actor *sec.Actor, slug string) error {
	if err := sec.AdminOrReadOnly(actor, sec.ActionDelete); err != nil {
		return err
	}
	return service.repository.Delete(context, slug)
}

// deriveSlug builds a slug from the name, cut to the column width.
func deriveSlug(name string) string {
	derived := slug.From(name)
	if len(derived) > SlugMaxLen {
		derived = strings.TrimRight(derived[:SlugMaxLen], "-")
	}
	return derived
}
