// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/taibuivan/yamdb/internal/social/review"
)

// MockRepository mocks the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error) {
	args := m.Called(ctx, reviewID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Comment), args.Int(1), args.Error(2)
}

func (m *MockRepository) FindByID(ctx context.Context, reviewID, id int64) (*Comment, error) {
	args := m.Called(ctx, reviewID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Comment), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, comment *Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, comment *Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockReviews mocks the ReviewFinder interface
type MockReviews struct {
	mock.Mock
}

func (m *MockReviews) FindByID(ctx context.Context, titleID, id int64) (*review.Review, error) {
	args := m.Called(ctx, titleID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}
