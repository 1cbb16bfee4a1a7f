// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/taibuivan/yamdb/internal/core/taxonomy"
)

// MockRepository mocks the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, filter Filter) ([]*Title, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Title), args.Int(1), args.Error(2)
}

func (m *MockRepository) FindByID(ctx context.Context, id int64) (*Title, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Title), args.Error(1)
}

func (m *MockRepository) Exists(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) Create(ctx context.Context, record *Record, genreIDs []int64) error {
	return m.Called(ctx, record, genreIDs).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, record *Record, genreIDs []int64) error {
	return m.Called(ctx, record, genreIDs).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockTermRepository mocks taxonomy.Repository
type MockTermRepository struct {
	mock.Mock
}

func (m *MockTermRepository) List(ctx context.Context, filter taxonomy.Filter) ([]*taxonomy.Term, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*taxonomy.Term), args.Int(1), args.Error(2)
}

func (m *MockTermRepository) FindBySlug(ctx context.Context, slug string) (*taxonomy.Term, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomy.Term), args.Error(1)
}

func (m *MockTermRepository) FindBySlugs(ctx context.Context, slugs []string) ([]*taxonomy.Term, error) {
	args := m.Called(ctx, slugs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*taxonomy.Term), args.Error(1)
}

func (m *MockTermRepository) Create(ctx context.Context, term *taxonomy.Term) error {
	return m.Called(ctx, term).Error(0)
}

func (m *MockTermRepository) Delete(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}
