// Package dbtest opens an isolated, migrated postgres schema for integration tests.
// Tests are skipped unless TEST_DATABASE_URL is set.
package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strings"
	"testing"

	"asset-tracker/internal/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const envURL = "TEST_DATABASE_URL"

// Setup returns a pool whose search_path points at a fresh schema with all migrations
// applied. The schema is dropped when the test finishes.
func Setup(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv(envURL)
	if dsn == "" {
		t.Skipf("%s not set; skipping postgres integration test", envURL)
	}
	ctx := context.Background()

	admin, err := database.Open(dsn, 2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = admin.Close() })

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	_, err = admin.ExecContext(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = admin.ExecContext(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
	})

	scoped, err := WithSearchPath(dsn, schema)
	require.NoError(t, err)
	db, err := database.Open(scoped, 4)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(ctx, db))
	return db
}

// WithSearchPath adds a search_path runtime parameter to a URL or key=value DSN.
func WithSearchPath(dsn, schema string) (string, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
		q := u.Query()
		q.Set("search_path", schema)
		u.RawQuery = q.Encode()
		return u.String(), nil
	}
	return dsn + " search_path=" + schema, nil
}
