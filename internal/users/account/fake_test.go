// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"sort"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/users/auth"
)

// memoryUsers is an in-process auth.UserRepository keyed by ID.
type memoryUsers struct {
	rows   map[int64]auth.User
	nextID int64
}

func newMemoryUsers(users ...auth.User) *memoryUsers {
	m := &memoryUsers{rows: map[int64]auth.User{}}
	for _, user := range users {
		m.rows[user.ID] = user
		m.nextID = max(m.nextID, user.ID)
	}
	return m
}

func (m *memoryUsers) find(match func(auth.User) bool) (*auth.User, error) {
	for _, user := range m.rows {
		if match(user) {
			found := user
			return &found, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (m *memoryUsers) FindByID(_ context.Context, id int64) (*auth.User, error) {
	return m.find(func(u auth.User) bool { return u.ID == id })
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	return m.find(func(u auth.User) bool { return u.Email == email })
}

func (m *memoryUsers) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	return m.find(func(u auth.User) bool { return u.Username == username })
}

func (m *memoryUsers) List(_ context.Context, filter auth.UserFilter) ([]*auth.User, int, error) {
	var matched []*auth.User
	for _, user := range m.rows {
		if strings.Contains(strings.ToLower(user.Username), strings.ToLower(filter.Search)) {
			found := user
			matched = append(matched, &found)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Username < matched[j].Username })

	total := len(matched)
	start := min(filter.Offset, total)
	end := min(start+filter.Limit, total)
	return matched[start:end], total, nil
}

func (m *memoryUsers) conflict(user *auth.User) error {
	for _, other := range m.rows {
		if other.ID == user.ID {
			continue
		}
		if other.Username == user.Username {
			return apperr.FieldInvalid("username", "A record with this username already exists")
		}
		if other.Email == user.Email {
			return apperr.FieldInvalid("email", "A record with this email already exists")
		}
	}
	return nil
}

func (m *memoryUsers) Create(_ context.Context, user *auth.User) error {
	if err := m.conflict(user); err != nil {
		return err
	}
	m.nextID++
	user.ID = m.nextID
	m.rows[user.ID] = *user
	return nil
}

func (m *memoryUsers) Update(_ context.Context, user *auth.User) error {
	if _, ok := m.rows[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	if err := m.conflict(user); err != nil {
		return err
	}
	m.rows[user.ID] = *user
	return nil
}

func (m *memoryUsers) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(m.rows, id)
	return nil
}
