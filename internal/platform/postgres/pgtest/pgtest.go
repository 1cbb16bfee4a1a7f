// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pgtest connects repository tests to a real PostgreSQL database.

Tests are skipped unless TEST_DATABASE_URL is set. The schema is migrated
up before the first use, and fixtures get unique names so packages can share
one database without truncating each other's rows.
*/
package pgtest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/migration"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
)

// EnvDatabaseURL names the variable holding the test database DSN.
const EnvDatabaseURL = "TEST_DATABASE_URL"

// migrationsDir locates data/migrations relative to this file.
func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "data", "migrations")
}

// Open migrates the test database and returns a pool closed at test end.
func Open(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(EnvDatabaseURL)
	if dsn == "" {
		t.Skipf("%s not set, skipping PostgreSQL test", EnvDatabaseURL)
	}

	logger := slog.New(slog.DiscardHandler)
	require.NoError(t, migration.RunUp(dsn, migrationsDir(), logger))

	pool, err := postgres.NewPool(context.Background(), dsn, logger)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

// Unique returns prefix followed by a random suffix, safe for slugs and usernames.
func Unique(prefix string) string {
	return prefix + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// InsertUser stores a plain user and returns its ID.
func InsertUser(t *testing.T, db postgres.DBTX, username string) int64 {
	t.Helper()

	table := schema.UserAccount
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		table.Table, table.Username, table.Email, table.ID)

	var id int64
	err := db.QueryRow(context.Background(), query, username, username+"@yamdb.test").Scan(&id)
	require.NoError(t, err)
	return id
}

// InsertTitle stores an uncategorised title and returns its ID.
func InsertTitle(t *testing.T, db postgres.DBTX, name string) int64 {
	t.Helper()

	table := schema.CoreTitle
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		table.Table, table.Name, table.Year, table.ID)

	var id int64
	err := db.QueryRow(context.Background(), query, name, 2000).Scan(&id)
	require.NoError(t, err)
	return id
}
