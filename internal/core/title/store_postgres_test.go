// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/core/taxonomy"
	"github.com/taibuivan/yamdb/internal/platform/postgres/pgtest"
	"github.com/taibuivan/yamdb/internal/social/review"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

func TestWhereClause(t *testing.T) {
	genreExists := `EXISTS ( SELECT 1 FROM core.titlegenre tg JOIN core.genre g ON g.id = tg.genreid WHERE tg.titleid = t.id AND g.slug = $%d)`

	tests := []struct {
		name   string
		filter Filter
		where  string
		args   []any
	}{
		{name: "empty", filter: Filter{}, where: "", args: nil},
		{name: "blank name", filter: Filter{Name: "   "}, where: "", args: nil},
		{
			name:   "name",
			filter: Filter{Name: " Dune "},
			where:  "WHERE t.name ILIKE $1",
			args:   []any{"%Dune%"},
		},
		{
			name:   "year",
			filter: Filter{Year: pointer.To(1965)},
			where:  "WHERE t.year = $1",
			args:   []any{1965},
		},
		{
			name:   "category",
			filter: Filter{Category: "book"},
			where:  "WHERE c.slug = $1",
			args:   []any{"book"},
		},
		{
			name:   "genre",
			filter: Filter{Genre: "scifi"},
			where:  "WHERE " + strings.Replace(genreExists, "$%d", "$1", 1),
			args:   []any{"scifi"},
		},
		{
			name:   "all combined",
			filter: Filter{Name: "Dune", Year: pointer.To(1965), Category: "book", Genre: "scifi"},
			where: "WHERE t.name ILIKE $1 AND t.year = $2 AND c.slug = $3 AND " +
				strings.Replace(genreExists, "$%d", "$4", 1),
			args: []any{"%Dune%", 1965, "book", "scifi"},
		},
		{
			name:   "year and genre keep their order",
			filter: Filter{Year: pointer.To(2001), Genre: "drama"},
			where:  "WHERE t.year = $1 AND " + strings.Replace(genreExists, "$%d", "$2", 1),
			args:   []any{2001, "drama"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := whereClause(tt.filter)

			assert.Equal(t, tt.where, strings.Join(strings.Fields(where), " "))
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestWhereClause_EscapesLikeWildcards(t *testing.T) {
	_, args := whereClause(Filter{Name: "100%_off"})

	require.Len(t, args, 1)
	assert.Equal(t, `%100\%\_off%`, args[0])
}

// # PostgreSQL

func TestPostgresRepository_Rating(t *testing.T) {
	pool := pgtest.Open(t)
	ctx := context.Background()
	titles := NewPostgresRepository(pool)
	reviews := review.NewPostgresRepository(pool)

	record := &Record{Name: pgtest.Unique("rated"), Year: 1999}
	require.NoError(t, titles.Create(ctx, record, nil))

	found, err := titles.FindByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Rating, "a title without reviews has no rating")

	for _, score := range []int{4, 9} {
		authorID := pgtest.InsertUser(t, pool, pgtest.Unique("critic"))
		require.NoError(t, reviews.Create(ctx, &review.Review{
			TitleID: record.ID, AuthorID: authorID, Text: "Seen it", Score: score,
		}))
	}

	found, err = titles.FindByID(ctx, record.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Rating)
	assert.InDelta(t, 6.5, *found.Rating, 1e-9)

	listed, total, err := titles.List(ctx, Filter{Name: record.Name, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].Rating)
	assert.InDelta(t, 6.5, *listed[0].Rating, 1e-9)
}

func TestPostgresRepository_CategoryDeleteClearsTitle(t *testing.T) {
	pool := pgtest.Open(t)
	ctx := context.Background()
	titles := NewPostgresRepository(pool)
	categories := taxonomy.NewPostgresRepository(pool, taxonomy.Category)
	genres := taxonomy.NewPostgresRepository(pool, taxonomy.Genre)

	category := &taxonomy.Term{Name: "Books", Slug: pgtest.Unique("book")}
	require.NoError(t, categories.Create(ctx, category))
	genre := &taxonomy.Term{Name: "Sci-Fi", Slug: pgtest.Unique("scifi")}
	require.NoError(t, genres.Create(ctx, genre))

	record := &Record{Name: pgtest.Unique("dune"), Year: 1965, CategoryID: &category.ID}
	require.NoError(t, titles.Create(ctx, record, []int64{genre.ID}))

	found, err := titles.FindByID(ctx, record.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Category)
	assert.Equal(t, category.Slug, found.Category.Slug)

	listed, total, err := titles.List(ctx, Filter{Category: category.Slug, Genre: genre.Slug, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, listed, 1)
	assert.Equal(t, record.ID, listed[0].ID)
	require.Len(t, listed[0].Genre, 1)
	assert.Equal(t, genre.Slug, listed[0].Genre[0].Slug)

	require.NoError(t, categories.Delete(ctx, category.Slug))

	found, err = titles.FindByID(ctx, record.ID)
	require.NoError(t, err, "the title survives its category")
	assert.Nil(t, found.Category)
	require.Len(t, found.Genre, 1)

	require.NoError(t, genres.Delete(ctx, genre.Slug))

	found, err = titles.FindByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Genre)
}
