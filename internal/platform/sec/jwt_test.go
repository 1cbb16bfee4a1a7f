// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/sec"
)

func newTokenService(t *testing.T, issuer string) *sec.TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return sec.NewTokenServiceFromKey(key, &key.PublicKey, issuer)
}

/*
TestTokenService_RoundTrip verifies a freshly issued token parses back to its claims.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, "yamdb.app")

	token, err := service.GenerateAccessToken(7, "alice", sec.RoleModerator, time.Hour)
	require.NoError(t, err)

	claims, err := service.ParseToken(token)
	require.NoError(t, err)

	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "moderator", claims.Role)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, "yamdb.app", claims.Issuer)
}

/*
TestTokenService_Rejects verifies expired, foreign and malformed tokens fail.
*/
func TestTokenService_Rejects(t *testing.T) {
	service := newTokenService(t, "yamdb.app")

	t.Run("expired", func(t *testing.T) {
		token, err := service.GenerateAccessToken(1, "bob", sec.RoleUser, -time.Minute)
		require.NoError(t, err)

		_, err = service.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("other_key", func(t *testing.T) {
		other := newTokenService(t, "yamdb.app")
		token, err := other.GenerateAccessToken(1, "bob", sec.RoleUser, time.Hour)
		require.NoError(t, err)

		_, err = service.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("other_issuer", func(t *testing.T) {
		other := newTokenService(t, "evil.example")
		token, err := other.GenerateAccessToken(1, "bob", sec.RoleUser, time.Hour)
		require.NoError(t, err)

		_, err = service.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := service.ParseToken("not.a.jwt")
		assert.Error(t, err)
	})
}

/*
TestUserRole_AtLeast verifies the role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleModerator))
	assert.True(t, sec.RoleModerator.AtLeast(sec.RoleUser))
	assert.False(t, sec.RoleUser.AtLeast(sec.RoleModerator))
	assert.False(t, sec.UserRole("superuser").Valid())
	assert.True(t, sec.RoleUser.Valid())
}
