package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/brandkit-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// Environment variables naming the test services.
const (
	DatabaseURLEnv = "BRANDKIT_TEST_DATABASE_URL"
	RedisURLEnv    = "BRANDKIT_TEST_REDIS_URL"
	MongoURIEnv    = "BRANDKIT_TEST_MONGO_URI"
)

// GetTestDatabaseURL returns the database URL for tests.
// It checks BRANDKIT_TEST_DATABASE_URL and DATABASE_URL in that order,
// returning the first non-empty value.
func GetTestDatabaseURL() string {
	return firstEnv(DatabaseURLEnv, "DATABASE_URL")
}

// RequireURL returns the first non-empty environment variable among names,
// skipping the test when none is set.
func RequireURL(t *testing.T, names ...string) string {
	t.Helper()

	if v := firstEnv(names...); v != "" {
		return v
	}
	t.Skipf("%s not set - skipping integration test", strings.Join(names, " / "))
	return ""
}

// GetTestDBWithT returns a migrated database connection for testing.
// It skips the test if no database URL is configured and registers cleanup
// to close the connection.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := RequireURL(t, DatabaseURLEnv, "DATABASE_URL")

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, dbURL, nil)
	require.NoError(t, err, "Failed to open database connection")

	t.Cleanup(func() {
		CleanupDB(t, db)
	})

	require.NoError(t, postgres.Migrate(ctx, db, nil), "Failed to run migrations")
	return db
}

// WithTx executes a test function within a transaction, automatically rolling back
// after the test completes. This ensures test isolation and prevents side effects.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		// sql.ErrTxDone is expected if tx is already committed or rolled back
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// CleanupDB safely closes a database connection.
func CleanupDB(t *testing.T, db *sql.DB) {
	t.Helper()
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		t.Logf("Warning: failed to close database connection: %v", err)
	}
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
