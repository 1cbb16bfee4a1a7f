// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

var (
	admin = &sec.Actor{ID: 1, Username: "root", Role: sec.RoleAdmin}
	user  = &sec.Actor{ID: 2, Username: "ann", Role: sec.RoleUser}
)

func statusOf(err error) int {
	if ae := apperr.As(err); ae != nil {
		return ae.HTTPStatus
	}
	return 0
}

func TestCreate_DerivesSlug(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo, Genre)

	repo.On("Create", mock.Anything, &Term{Name: "Science Fiction", Slug: "science-fiction"}).
		Run(func(args mock.Arguments) { args.Get(1).(*Term).ID = 7 }).
		Return(nil)

	term, err := service.Create(context.Background(), admin, CreateInput{Name: " Science Fiction "})
	require.NoError(t, err)
	assert.Equal(t, int64(7), term.ID)
	assert.Equal(t, "science-fiction", term.Slug)
	repo.AssertExpectations(t)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateInput
		field string
	}{
		{"missing_name", CreateInput{Slug: "rock"}, FieldName},
		{"long_name", CreateInput{Name: strings.Repeat("n", NameMaxLen+1), Slug: "rock"}, FieldName},
		{"bad_slug", CreateInput{Name: "Rock", Slug: "rock & roll"}, FieldSlug},
		{"long_slug", CreateInput{Name: "Rock", Slug: strings.Repeat("s", SlugMaxLen+1)}, FieldSlug},
		{"underivable_slug", CreateInput{Name: "!!!"}, FieldSlug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			service := NewService(repo, Category)

			_, err := service.Create(context.Background(), admin, tt.input)
			require.Equal(t, http.StatusBadRequest, statusOf(err))
			assert.Equal(t, tt.field, apperr.As(err).Details[0].Field)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreate_DuplicateSlug(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo, Category)

	repo.On("Create", mock.Anything, mock.Anything).
		Return(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: Category.Table.SlugKey})

	_, err := service.Create(context.Background(), admin, CreateInput{Name: "Film", Slug: "film"})
	require.Equal(t, http.StatusBadRequest, statusOf(err))
	assert.Equal(t, apperr.CodeValidation, apperr.As(err).Code)
	assert.Equal(t, FieldSlug, apperr.As(err).Details[0].Field)
}

func TestCreate_Policy(t *testing.T) {
	service := NewService(new(MockRepository), Category)

	_, err := service.Create(context.Background(), nil, CreateInput{Name: "Film"})
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))

	_, err = service.Create(context.Background(), user, CreateInput{Name: "Film"})
	assert.Equal(t, http.StatusForbidden, statusOf(err))
}

func TestDelete(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo, Genre)

	repo.On("Delete", mock.Anything, "rock").Return(nil)
	repo.On("Delete", mock.Anything, "jazz").Return(apperr.NotFound("Genre"))

	assert.NoError(t, service.Delete(context.Background(), admin, "rock"))
	assert.Equal(t, http.StatusNotFound, statusOf(service.Delete(context.Background(), admin, "jazz")))
	assert.Equal(t, http.StatusForbidden, statusOf(service.Delete(context.Background(), user, "rock")))
}

func TestDeriveSlug_Truncates(t *testing.T) {
	derived := deriveSlug(strings.Repeat("ab ", 30))
	assert.LessOrEqual(t, len(derived), SlugMaxLen)
	assert.False(t, strings.HasSuffix(derived, "-"))
}
