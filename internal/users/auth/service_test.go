// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/mail"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

type fixture struct {
	users    *MockUserRepository
	attempts *memoryAttempts
	mailer   *MockSender
	tokens   *sec.TokenService
	service  *Service
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		users:    new(MockUserRepository),
		attempts: newMemoryAttempts(),
		mailer:   new(MockSender),
		tokens:   newTestTokens(t),
	}
	f.service = NewService(f.users, f.attempts, f.tokens, f.mailer, testOptions)
	f.service.newCode = func() (string, error) { return "4K2", nil }
	return f
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	ae := apperr.As(err)
	require.NotNil(t, ae, "expected an AppError, got %v", err)
	return ae.HTTPStatus
}

func TestSignup_NewUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.users.On("FindByEmail", ctx, "bob@example.com").Return(nil, apperr.NotFound("User"))
	f.users.On("FindByUsername", ctx, "bob").Return(nil, apperr.NotFound("User"))
	f.users.On("Create", ctx, mock.MatchedBy(func(u *User) bool {
		return u.Username == "bob" && u.Role == sec.RoleUser && u.ConfirmationCode == "4K2"
	})).Return(nil)
	f.mailer.On("Send", ctx, mail.Message{
		To:      "bob@example.com",
		Subject: "Yamdb registration",
		Body:    "Hello bob! Thank you for registering. Confirmation code: 4K2",
	}).Return(nil)

	accepted, err := f.service.Signup(ctx, SignupInput{Username: "bob", Email: "bob@example.com"})

	require.NoError(t, err)
	assert.Equal(t, &SignupInput{Username: "bob", Email: "bob@example.com"}, accepted)
	f.users.AssertExpectations(t)
	f.mailer.AssertExpectations(t)
}

func TestSignup_ReturningPairReusesCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.users.On("FindByEmail", ctx, "bob@example.com").
		Return(&User{ID: 5, Username: "bob", Email: "bob@example.com", ConfirmationCode: "7Q1"}, nil)
	f.mailer.On("Send", ctx, mock.MatchedBy(func(m mail.Message) bool {
		return m.Body == "Hello bob! Thank you for registering. Confirmation code: 7Q1"
	})).Return(nil)

	_, err := f.service.Signup(ctx, SignupInput{Username: "bob", Email: "bob@example.com"})

	require.NoError(t, err)
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.mailer.AssertExpectations(t)
}

func TestSignup_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("reserved_username", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Signup(ctx, SignupInput{Username: "me", Email: "me@example.com"})
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
		f.users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("invalid_fields", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Signup(ctx, SignupInput{Username: "bad name", Email: "nope"})
		require.Equal(t, http.StatusBadRequest, statusOf(t, err))
		assert.Len(t, apperr.As(err).Details, 2)
	})

	t.Run("email_bound_to_other_username", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("FindByEmail", ctx, "bob@example.com").Return(&User{Username: "robert", Email: "bob@example.com"}, nil)

		_, err := f.service.Signup(ctx, SignupInput{Username: "bob", Email: "bob@example.com"})
		assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	})

	t.Run("username_bound_to_other_email", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("FindByEmail", ctx, "new@example.com").Return(nil, apperr.NotFound("User"))
		f.users.On("FindByUsername", ctx, "bob").Return(&User{Username: "bob", Email: "bob@example.com"}, nil)

		_, err := f.service.Signup(ctx, SignupInput{Username: "bob", Email: "new@example.com"})
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	})

	t.Run("concurrent_insert_loses", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("FindByEmail", ctx, "bob@example.com").Return(nil, apperr.NotFound("User"))
		f.users.On("FindByUsername", ctx, "bob").Return(nil, apperr.NotFound("User"))
		f.users.On("Create", ctx, mock.Anything).Return(&pgconn.PgError{
			Code: pgerrcode.UniqueViolation, ConstraintName: "account_email_key",
			Detail: "Key (email)=(bob@example.com) already exists.",
		})

		_, err := f.service.Signup(ctx, SignupInput{Username: "bob", Email: "bob@example.com"})
		require.Equal(t, http.StatusBadRequest, statusOf(t, err))
		assert.Equal(t, "email", apperr.As(err).Details[0].Field)
		f.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("mail_failure", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("FindByEmail", ctx, "bob@example.com").Return(&User{Username: "bob", ConfirmationCode: "1A1"}, nil)
		f.mailer.On("Send", ctx, mock.Anything).Return(errors.New("relay down"))

		_, err := f.service.Signup(ctx, SignupInput{Username: "bob", Email: "bob@example.com"})
		assert.True(t, apperr.HasCode(err, apperr.CodeMailUnavailable))
		assert.Equal(t, http.StatusServiceUnavailable, statusOf(t, err))
	})
}

func TestExchangeToken(t *testing.T) {
	ctx := context.Background()
	bob := &User{ID: 9, Username: "bob", Role: sec.RoleModerator, ConfirmationCode: "3X8"}

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.attempts.counts["bob"] = 2
		f.users.On("FindByUsername", ctx, "bob").Return(bob, nil)

		pair, err := f.service.ExchangeToken(ctx, TokenInput{Username: "bob", ConfirmationCode: "3X8"})
		require.NoError(t, err)

		claims, err := f.tokens.ParseToken(pair.Access)
		require.NoError(t, err)
		assert.Equal(t, int64(9), claims.UserID)
		assert.Equal(t, "moderator", claims.Role)
		assert.Zero(t, f.attempts.counts["bob"])
	})

	t.Run("missing_fields", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.ExchangeToken(ctx, TokenInput{})
		require.Equal(t, http.StatusBadRequest, statusOf(t, err))
		assert.Len(t, apperr.As(err).Details, 2)
	})

	t.Run("unknown_user", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("FindByUsername", ctx, "ghost").Return(nil, apperr.NotFound("User"))

		_, err := f.service.ExchangeToken(ctx, TokenInput{Username: "ghost", ConfirmationCode: "1A1"})
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	})

	t.Run("wrong_code_is_case_sensitive", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("FindByUsername", ctx, "bob").Return(bob, nil)

		_, err := f.service.ExchangeToken(ctx, TokenInput{Username: "bob", ConfirmationCode: "3x8"})
		assert.True(t, apperr.HasCode(err, apperr.CodeInvalidConfirmationCode))
		assert.Equal(t, 1, f.attempts.counts["bob"])
	})

	t.Run("throttle_trips_at_limit", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("FindByUsername", ctx, "bob").Return(bob, nil)

		for range testOptions.ConfirmMaxAttempts {
			_, err := f.service.ExchangeToken(ctx, TokenInput{Username: "bob", ConfirmationCode: "0A0"})
			require.True(t, apperr.HasCode(err, apperr.CodeInvalidConfirmationCode))
		}

		// Even the right code is refused once the window is exhausted.
		_, err := f.service.ExchangeToken(ctx, TokenInput{Username: "bob", ConfirmationCode: "3X8"})
		assert.Equal(t, http.StatusTooManyRequests, statusOf(t, err))
	})
}

func TestVerifyToken(t *testing.T) {
	ctx := context.Background()

	t.Run("reloads_current_role", func(t *testing.T) {
		f := newFixture(t)
		token, err := f.tokens.GenerateAccessToken(9, "bob", sec.RoleUser, time.Hour)
		require.NoError(t, err)
		f.users.On("FindByID", ctx, int64(9)).Return(&User{ID: 9, Username: "bobby", Role: sec.RoleAdmin}, nil)

		claims, err := f.service.VerifyToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "bobby", claims.Username)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("deleted_user", func(t *testing.T) {
		f := newFixture(t)
		token, err := f.tokens.GenerateAccessToken(9, "bob", sec.RoleUser, time.Hour)
		require.NoError(t, err)
		f.users.On("FindByID", ctx, int64(9)).Return(nil, apperr.NotFound("User"))

		_, err = f.service.VerifyToken(ctx, token)
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})

	t.Run("garbage", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.VerifyToken(ctx, "garbage")
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})
}

func TestNewConfirmationCode(t *testing.T) {
	for range 50 {
		code, err := NewConfirmationCode()
		require.NoError(t, err)
		require.Len(t, code, 3)
		assert.Contains(t, codeDigits, string(code[0]))
		assert.Contains(t, codeLetters, string(code[1]))
		assert.Contains(t, codeDigits, string(code[2]))
	}
}
