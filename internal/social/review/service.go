// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

// # Service Layer

// Service handles the business logic for reviews.
type Service struct {
	repository Repository
	titles     TitleChecker
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repository Repository, titles TitleChecker) *Service {
	return &Service{repository: repository, titles: titles}
}

// List returns one page of a title's reviews. Listing is public.
func (service *Service) List(context context.Context, titleID int64, limit, offset int) ([]*Review, int, error) {
	if err := service.titles.Exists(context, titleID); err != nil {
		return nil, 0, err
	}
	return service.repository.List(context, titleID, limit, offset)
}

// Get returns one review of a title.
func (service *Service) Get(context context.Context, titleID, id int64) (*Review, error) {
	return service.repository.FindByID(context, titleID, id)
}

/*
Create posts the actor's review of a title.

Description: The title comes from the URL and the author from the token.
A second review of the same title by the same author is a conflict.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - titleID: int64
  - input: CreateInput

Returns:
  - *Review: The stored review
  - error: Policy, validation, not-found or conflict failures
*/
func (service *Service) Create(context context.Context, actor *sec.Actor, titleID int64, input CreateInput) (*Review, error) {
	if err := sec.AuthorOrStaffOrReadOnly(actor, sec.ActionCreate, 0); err != nil {
		return nil, err
	}

	review := &Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Author:   actor.Username,
		Text:     strings.TrimSpace(input.Text),
		Score:    pointer.Fallback(input.Score, 0),
	}

	validator := &validate.Validator{}
	validator.Custom(FieldScore, input.Score == nil, "This field is required")
	if err := validateReview(validator, review, input.Score != nil); err != nil {
		return nil, err
	}

	if err := service.titles.Exists(context, titleID); err != nil {
		return nil, err
	}

	if err := service.repository.Create(context, review); err != nil {
		if dberr.IsUniqueViolation(err, schema.SocialReview.AuthorTitleKey) {
			return nil, apperr.Conflict(DuplicateMessage)
		}
		return nil, dberr.Wrap(err, "review_create")
	}

	ctxutil.GetLogger(context).InfoContext(context, "review_created",
		slog.Int64("review_id", review.ID), slog.Int64("title_id", titleID))
	return review, nil
}

// Update changes the text or score of a review. Only its author and staff may do so.
func (service *Service) Update(context context.Context, actor *sec.Actor, titleID, id int64, input UpdateInput) (*Review, error) {
	if err := sec.Authenticated(actor); err != nil {
		return nil, err
	}

	review, err := service.repository.FindByID(context, titleID, id)
	if err != nil {
		return nil, err
	}

	if err := sec.AuthorOrStaffOrReadOnly(actor, sec.ActionUpdate, review.AuthorID); err != nil {
		return nil, err
	}

	if input.Text != nil {
		input.Text = pointer.To(strings.TrimSpace(*input.Text))
	}
	pointer.Assign(&review.Text, input.Text)
	pointer.Assign(&review.Score, input.Score)

	if err := validateReview(&validate.Validator{}, review, true); err != nil {
		return nil, err
	}

	if err := service.repository.Update(context, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes a review. Only its author and staff may do so.
func (service *Service) Delete(context context.Context, actor *sec.Actor, titleID, id int64) error {
	if err := sec.Authenticated(actor); err != nil {
		return err
	}

	review, err := service.repository.FindByID(context, titleID, id)
	if err != nil {
		return err
	}

	if err := sec.AuthorOrStaffOrReadOnly(actor, sec.ActionDelete, review.AuthorID); err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "review_deleted",
		slog.Int64("review_id", id), slog.Int64("actor_id", actor.ID))
	return nil
}

// validateReview checks text and, when present, the score range.
func validateReview(validator *validate.Validator, review *Review, hasScore bool) error {
	validator.Required(FieldText, review.Text)
	if hasScore {
		validator.Range(FieldScore, review.Score, MinScore, MaxScore)
	}
	return validator.Err()
}
