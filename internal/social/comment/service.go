// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

// Service handles the business logic for comments. Every operation first
// confirms that the review belongs to the title named in the URL.
type Service struct {
	repository Repository
	reviews    ReviewFinder
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repository Repository, reviews ReviewFinder) *Service {
	return &Service{repository: repository, reviews: reviews}
}

// List returns one page of comments on a review. Listing is public.
func (service *Service) List(context context.Context, titleID, reviewID int64, limit, offset int) ([]*Comment, int, error) {
	if _, err := service.reviews.FindByID(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return service.repository.List(context, reviewID, limit, offset)
}

// Get returns one comment on a review.
func (service *Service) Get(context context.Context, titleID, reviewID, id int64) (*Comment, error) {
	if _, err := service.reviews.FindByID(context, titleID, reviewID); err != nil {
		return nil, err
	}
	return service.repository.FindByID(context, reviewID, id)
}

/*
Create posts a comment as the actor.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - titleID, reviewID: int64
  - input: Input

Returns:
  - *Comment: The stored comment
  - error: Policy, validation or not-found failures
*/
func (service *Service) Create(context context.Context, actor *sec.Actor, titleID, reviewID int64, input Input) (*Comment, error) {
	if err := sec.AuthorOrStaffOrReadOnly(actor, sec.ActionCreate, 0); err != nil {
		return nil, err
	}

	comment := &Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Author:   actor.Username,
		Text:     strings.TrimSpace(pointer.Fallback(input.Text, "")),
	}
	if err := validateComment(comment); err != nil {
		return nil, err
	}

	if _, err := service.reviews.FindByID(context, titleID, reviewID); err != nil {
		return nil, err
	}

	if err := service.repository.Create(context, comment); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "comment_created",
		slog.Int64("comment_id", comment.ID), slog.Int64("review_id", reviewID))
	return comment, nil
}

// Update edits the text of a comment. Only its author and staff may do so.
func (service *Service) Update(context context.Context, actor *sec.Actor, titleID, reviewID, id int64, input Input) (*Comment, error) {
	comment, err := service.authorize(context, actor, sec.ActionUpdate, titleID, reviewID, id)
	if err != nil {
		return nil, err
	}

	if input.Text != nil {
		comment.Text = strings.TrimSpace(*input.Text)
	}
	if err := validateComment(comment); err != nil {
		return nil, err
	}

	if err := service.repository.Update(context, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment. Only its author and staff may do so.
func (service *Service) Delete(context context.Context, actor *sec.Actor, titleID, reviewID, id int64) error {
	if _, err := service.authorize(context, actor, sec.ActionDelete, titleID, reviewID, id); err != nil {
		return err
	}
	return service.repository.Delete(context, id)
}

// authorize loads the comment through its review and applies the author policy.
func (service *Service) authorize(context context.Context, actor *sec.Actor, action sec.Action, titleID, reviewID, id int64) (*Comment, error) {
	if err := sec.Authenticated(actor); err != nil {
		return nil, err
	}

	comment, err := service.Get(context, titleID, reviewID, id)
	if err != nil {
		return nil, err
	}

	if err := sec.AuthorOrStaffOrReadOnly(actor, action, comment.AuthorID); err != nil {
		return nil, err
	}
	return comment, nil
}

func validateComment(comment *Comment) error {
	return (&validate.Validator{}).Required(FieldText, comment.Text).Err()
}
