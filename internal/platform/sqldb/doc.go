// Package sqldb provides the SQL implementations of the store interfaces
// defined in internal/store. It runs on database/sql with either the pgx
// PostgreSQL driver or the modernc SQLite driver, and contains the shared
// building blocks both stores are assembled from: the row mapper and the
// paginated query engine.
package sqldb
