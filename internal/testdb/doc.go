// Package testdb provisions databases for tests.
//
// OpenSQLite gives every test its own temp-file SQLite database with the
// tboard and memo tables already created, so store and service tests run
// without any external setup. OpenPostgres runs the same tests against the
// PostgreSQL server named by DATABASE_URL and skips when it is unset.
//
// Schemas live in migrations/ as goose SQL files, one directory per
// dialect, and are embedded into the package.
//
// Basic usage:
//
//	func TestPostStore(t *testing.T) {
//	    db := testdb.OpenSQLite(t)
//	    posts := sqldb.NewPostStore(db, sqldb.SQLite(true), nil)
//	    ...
//	}
package testdb
