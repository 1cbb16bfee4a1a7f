// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

var (
	author    = &sec.Actor{ID: 2, Username: "ann", Role: sec.RoleUser}
	stranger  = &sec.Actor{ID: 3, Username: "ben", Role: sec.RoleUser}
	moderator = &sec.Actor{ID: 4, Username: "mod", Role: sec.RoleModerator}

	published = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
)

func statusOf(err error) int {
	if ae := apperr.As(err); ae != nil {
		return ae.HTTPStatus
	}
	return 0
}

func existing() *Review {
	return &Review{ID: 9, TitleID: 1, AuthorID: author.ID, Author: "ann", Text: "Great", Score: 8, PubDate: published}
}

func TestCreate(t *testing.T) {
	repo, titles := new(MockRepository), new(MockTitles)
	service := NewService(repo, titles)

	titles.On("Exists", mock.Anything, int64(1)).Return(nil)
	repo.On("Create", mock.Anything, &Review{TitleID: 1, AuthorID: 2, Author: "ann", Text: "Great", Score: 8}).
		Run(func(args mock.Arguments) {
			review := args.Get(1).(*Review)
			review.ID, review.PubDate = 9, published
		}).
		Return(nil)

	review, err := service.Create(context.Background(), author, 1, CreateInput{Text: " Great ", Score: pointer.To(8)})
	require.NoError(t, err)
	assert.Equal(t, existing(), review)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateInput
		field string
	}{
		{"missing_text", CreateInput{Score: pointer.To(5)}, FieldText},
		{"missing_score", CreateInput{Text: "ok"}, FieldScore},
		{"score_low", CreateInput{Text: "ok", Score: pointer.To(0)}, FieldScore},
		{"score_high", CreateInput{Text: "ok", Score: pointer.To(11)}, FieldScore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, titles := new(MockRepository), new(MockTitles)

			_, err := NewService(repo, titles).Create(context.Background(), author, 1, tt.input)
			require.Equal(t, http.StatusBadRequest, statusOf(err))
			assert.Equal(t, tt.field, apperr.As(err).Details[0].Field)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreate_Duplicate(t *testing.T) {
	repo, titles := new(MockRepository), new(MockTitles)
	titles.On("Exists", mock.Anything, int64(1)).Return(nil)
	repo.On("Create", mock.Anything, mock.Anything).
		Return(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: schema.SocialReview.AuthorTitleKey})

	_, err := NewService(repo, titles).Create(context.Background(), author, 1, CreateInput{Text: "Again", Score: pointer.To(3)})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
	assert.Equal(t, apperr.CodeConflict, ae.Code)
	assert.Equal(t, DuplicateMessage, ae.Message)
}

func TestCreate_UnknownTitleAndAnonymous(t *testing.T) {
	repo, titles := new(MockRepository), new(MockTitles)
	titles.On("Exists", mock.Anything, int64(404)).Return(apperr.NotFound("Title"))
	service := NewService(repo, titles)

	_, err := service.Create(context.Background(), author, 404, CreateInput{Text: "x", Score: pointer.To(5)})
	assert.Equal(t, http.StatusNotFound, statusOf(err))

	_, err = service.Create(context.Background(), nil, 1, CreateInput{Text: "x", Score: pointer.To(5)})
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))
}

func TestUpdate_Permissions(t *testing.T) {
	tests := []struct {
		name   string
		actor  *sec.Actor
		status int
	}{
		{"author", author, http.StatusOK},
		{"moderator", moderator, http.StatusOK},
		{"stranger", stranger, http.StatusForbidden},
		{"anonymous", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("FindByID", mock.Anything, int64(1), int64(9)).Return(existing(), nil)
			repo.On("Update", mock.Anything, mock.Anything).Return(nil)

			review, err := NewService(repo, new(MockTitles)).Update(context.Background(), tt.actor, 1, 9, UpdateInput{Score: pointer.To(10)})
			if tt.status != http.StatusOK {
				assert.Equal(t, tt.status, statusOf(err))
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 10, review.Score)
			assert.Equal(t, "Great", review.Text)
			assert.Equal(t, published, review.PubDate)
		})
	}
}

func TestUpdate_RejectsOutOfRangeScore(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByID", mock.Anything, int64(1), int64(9)).Return(existing(), nil)

	_, err := NewService(repo, new(MockTitles)).Update(context.Background(), author, 1, 9, UpdateInput{Score: pointer.To(0)})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}

func TestDelete(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByID", mock.Anything, int64(1), int64(9)).Return(existing(), nil)
	repo.On("FindByID", mock.Anything, int64(2), int64(9)).Return(nil, apperr.NotFound("Review"))
	repo.On("Delete", mock.Anything, int64(9)).Return(nil)
	service := NewService(repo, new(MockTitles))

	assert.Equal(t, http.StatusForbidden, statusOf(service.Delete(context.Background(), stranger, 1, 9)))
	assert.Equal(t, http.StatusNotFound, statusOf(service.Delete(context.Background(), author, 2, 9)))
	assert.NoError(t, service.Delete(context.Background(), moderator, 1, 9))
}
