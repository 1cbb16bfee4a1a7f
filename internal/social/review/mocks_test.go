// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRepository mocks the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, titleID int64, limit, offset int) ([]*Review, int, error) {
	args := m.Called(ctx, titleID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Review), args.Int(1), args.Error(2)
}

func (m *MockRepository) FindByID(ctx context.Context, titleID, id int64) (*Review, error) {
	args := m.Called(ctx, titleID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Review), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, review *Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, review *Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockTitles mocks the TitleChecker interface
type MockTitles struct {
	mock.Mock
}

func (m *MockTitles) Exists(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
