package db

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
)

// NewTestDB creates a migrated SQLite database in a temporary directory. A
// file is used instead of :memory: so that pooled connections share state.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(DialectSQLite, filepath.Join(t.TempDir(), "zaloga.sqlite3"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := Migrate(context.Background(), db, DialectSQLite); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return db
}

// NewPostgresTestDB connects to ZALOGA_TEST_POSTGRES_DSN, drops the
// application tables and migrates from scratch. The test is skipped when the
// variable is unset or the server is unreachable.
func NewPostgresTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("ZALOGA_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("ZALOGA_TEST_POSTGRES_DSN not set")
	}

	db, err := Open(DialectPostgres, dsn)
	if err != nil {
		t.Skipf("Postgres not available: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS stock_changes, items, versions`); err != nil {
		t.Fatalf("resetting test database: %v", err)
	}
	if err := Migrate(ctx, db, DialectPostgres); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return db
}
