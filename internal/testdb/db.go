package testdb

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/memoboard-api/internal/ciutil"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // sqlite driver
)

// TestTimeout bounds schema setup and connection checks.
const TestTimeout = 5 * time.Second

// Driver names registered with database/sql.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

// GetTestDatabaseURL returns the PostgreSQL URL for tests. It checks
// DATABASE_URL and MEMOBOARD_TEST_DB_URL in that order.
func GetTestDatabaseURL() string {
	return ciutil.TestDatabaseURL(nil)
}

// ShouldSkipDatabaseTest reports whether PostgreSQL-only tests must skip.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// OpenSQLite creates a migrated SQLite database in a temp directory owned
// by t. The connection is closed when the test finishes.
func OpenSQLite(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "memoboard.db")
	db, err := sql.Open(DriverSQLite, SQLiteDSN(path))
	require.NoError(t, err, "Failed to open sqlite database")
	t.Cleanup(func() { CleanupDB(t, db) })

	require.NoError(t, ApplyMigrations(db, DriverSQLite), "Failed to migrate sqlite database")
	return db
}

// SQLiteDSN returns a modernc.org/sqlite data source name for a database
// file, tuned so concurrent connections wait for locks instead of failing.
func SQLiteDSN(path string) string {
	return "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// OpenPostgres connects to the database at GetTestDatabaseURL, migrates it
// and empties the tables. It skips the test when no URL is configured.
// Tests sharing a server must not run in parallel.
func OpenPostgres(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		if ciutil.RequirePostgres() {
			t.Fatalf("%s is set but neither %s nor %s is",
				ciutil.EnvRequirePostgres, ciutil.EnvDatabaseURL, ciutil.EnvTestDBURL)
		}
		t.Skip("DATABASE_URL or MEMOBOARD_TEST_DB_URL not set - skipping integration test")
	}

	db, err := sql.Open(DriverPostgres, dbURL)
	require.NoError(t, err, "Failed to open database connection")
	t.Cleanup(func() { CleanupDB(t, db) })

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "Database ping failed")

	require.NoError(t, ApplyMigrations(db, DriverPostgres), "Failed to migrate database")

	_, err = db.ExecContext(ctx, "TRUNCATE tboard, memo RESTART IDENTITY")
	require.NoError(t, err, "Failed to reset tables")
	return db
}

// ApplyMigrations brings db up to the latest schema for driver.
func ApplyMigrations(db *sql.DB, driver string) error {
	var (
		dialect goose.Dialect
		dir     string
	)
	switch driver {
	case DriverSQLite:
		dialect, dir = goose.DialectSQLite3, "migrations/sqlite"
	case DriverPostgres:
		dialect, dir = goose.DialectPostgres, "migrations/postgres"
	default:
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	fsys, err := fs.Sub(migrations, dir)
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// WithTx executes fn within a transaction that is rolled back afterwards.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
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

// CleanupDB closes db, logging any error.
func CleanupDB(t *testing.T, db *sql.DB) {
	t.Helper()
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		t.Logf("Warning: failed to close database connection: %v", err)
	}
}

// MustExec runs a statement for test fixtures, failing the test on error.
func MustExec(t *testing.T, db *sql.DB, query string, args ...any) sql.Result {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	result, err := db.ExecContext(ctx, query, args...)
	require.NoError(t, err, "Fixture statement failed: %s", query)
	return result
}
