// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/taibuivan/yamdb/internal/core/taxonomy"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

// # Service Layer

// Service handles the business logic for the title catalogue.
type Service struct {
	repository Repository
	categories taxonomy.Repository
	genres     taxonomy.Repository
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repository Repository, categories, genres taxonomy.Repository) *Service {
	return &Service{repository: repository, categories: categories, genres: genres}
}

// List returns one page of titles matching the filter. Listing is public.
func (service *Service) List(context context.Context, filter Filter) ([]*Title, int, error) {
	return service.repository.List(context, filter)
}

// Get returns a single title.
func (service *Service) Get(context context.Context, id int64) (*Title, error) {
	return service.repository.FindByID(context, id)
}

/*
Create adds a title to the catalogue.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - input: CreateInput

Returns:
  - *Title: The new title in its read representation
  - error: Policy, validation or unknown-slug failures
*/
func (service *Service) Create(context context.Context, actor *sec.Actor, input CreateInput) (*Title, error) {
	if err := sec.AdminOrReadOnly(actor, sec.ActionCreate); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Custom(FieldYear, input.Year == nil, "This field is required")
	record := &Record{
		Name:        strings.TrimSpace(input.Name),
		Year:        pointer.Fallback(input.Year, 0),
		Description: input.Description,
	}
	if err := validateRecord(validator, record); err != nil {
		return nil, err
	}

	category, err := service.resolveCategory(context, input.Category)
	if err != nil {
		return nil, err
	}
	genres, err := service.resolveGenres(context, input.Genre)
	if err != nil {
		return nil, err
	}

	if category != nil {
		record.CategoryID = &category.ID
	}
	if err := service.repository.Create(context, record, termIDs(genres)); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "title_created", slog.Int64("title_id", record.ID))

	return &Title{
		ID:          record.ID,
		Name:        record.Name,
		Year:        record.Year,
		Description: record.Description,
		Category:    category,
		Genre:       genres,
	}, nil
}

/*
Update applies a partial change to a title.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - id: int64
  - input: UpdateInput

Returns:
  - *Title: The title as stored after the change
  - error: Policy, validation, not-found or unknown-slug failures
*/
func (service *Service) Update(context context.Context, actor *sec.Actor, id int64, input UpdateInput) (*Title, error) {
	if err := sec.AdminOrReadOnly(actor, sec.ActionUpdate); err != nil {
		return nil, err
	}

	current, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	record := &Record{
		ID:          current.ID,
		Name:        current.Name,
		Year:        current.Year,
		Description: current.Description,
	}
	if current.Category != nil {
		record.CategoryID = &current.Category.ID
	}

	if input.Name != nil {
		input.Name = pointer.To(strings.TrimSpace(*input.Name))
	}
	pointer.Assign(&record.Name, input.Name)
	pointer.Assign(&record.Year, input.Year)
	pointer.Assign(&record.Description, input.Description)

	if err := validateRecord(&validate.Validator{}, record); err != nil {
		return nil, err
	}

	if input.Category != nil {
		category, err := service.resolveCategory(context, *input.Category)
		if err != nil {
			return nil, err
		}
		record.CategoryID = nil
		if category != nil {
			record.CategoryID = &category.ID
		}
	}

	var genreIDs []int64
	if input.Genre != nil {
		genres, err := service.resolveGenres(context, *input.Genre)
		if err != nil {
			return nil, err
		}
		genreIDs = termIDs(genres)
	}

	if err := service.repository.Update(context, record, genreIDs); err != nil {
		return nil, err
	}
	return service.repository.FindByID(context, id)
}

// Delete removes a title together with its reviews and comments.
func (service *Service) Delete(context context.Context, actor *sec.Actor, id int64) error {
	if err := sec.AdminOrReadOnly(actor, sec.ActionDelete); err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "title_deleted", slog.Int64("title_id", id))
	return nil
}

// # Helpers

// validateRecord checks the scalar fields of a title.
func validateRecord(validator *validate.Validator, record *Record) error {
	validator.
		Required(FieldName, record.Name).
		MaxLen(FieldName, record.Name, NameMaxLen).
		YearNotFuture(FieldYear, record.Year)
	return validator.Err()
}

// resolveCategory maps a category slug to its term. An empty slug means no category.
func (service *Service) resolveCategory(context context.Context, slug string) (*taxonomy.Term, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, nil
	}

	category, err := service.categories.FindBySlug(context, slug)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.FieldInvalid(FieldCategory, fmt.Sprintf("Category %q does not exist", slug))
		}
		return nil, err
	}
	return category, nil
}

// resolveGenres maps genre slugs to terms. Every slug must exist; duplicates collapse.
func (service *Service) resolveGenres(context context.Context, slugs []string) ([]*taxonomy.Term, error) {
	wanted := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		slug = strings.TrimSpace(slug)
		if slug != "" && !slices.Contains(wanted, slug) {
			wanted = append(wanted, slug)
		}
	}

	genres, err := service.genres.FindBySlugs(context, wanted)
	if err != nil {
		return nil, err
	}

	if len(genres) != len(wanted) {
		validator := &validate.Validator{}
		for _, slug := range wanted {
			found := slices.ContainsFunc(genres, func(genre *taxonomy.Term) bool { return genre.Slug == slug })
			validator.Custom(FieldGenre, !found, fmt.Sprintf("Genre %q does not exist", slug))
		}
		return nil, validator.Err()
	}

	slices.SortFunc(genres, func(a, b *taxonomy.Term) int { return strings.Compare(a.Name, b.Name) })
	return genres, nil
}

// termIDs extracts the primary keys of terms.
func termIDs(terms []*taxonomy.Term) []int64 {
	ids := make([]int64, len(terms))
	for i, term := range terms {
		ids[i] = term.ID
	}
	return ids
}
