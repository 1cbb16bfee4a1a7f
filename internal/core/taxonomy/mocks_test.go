// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRepository mocks the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, filter Filter) ([]*Term, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Term), args.Int(1), args.Error(2)
}

func (m *MockRepository) FindBySlug(ctx context.Context, slug string) (*Term, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Term), args.Error(1)
}

func (m *MockRepository) FindBySlugs(ctx context.Context, slugs []string) ([]*Term, error) {
	args := m.Called(ctx, slugs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Term), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, term *Term) error {
	return m.Called(ctx, term).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}
