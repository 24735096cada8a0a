package sqldb

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/memoboard-api/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"

	// stringTooLongCode is raised when a value exceeds a varchar length, e.g. an oversized br_cd
	stringTooLongCode = "22001"
)

// MapError maps a database error to the store error vocabulary.
// It wraps the original error to preserve context for logs.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", store.ErrNotFound, err)
	}

	if IsConstraintViolation(err) {
		return fmt.Errorf("%w: %s: %w", store.ErrInvalidEntity, describeViolation(err), err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == stringTooLongCode {
		return fmt.Errorf("%w: value too long: %w", store.ErrInvalidEntity, err)
	}

	return err
}

// describeViolation names the constraint, or the column for NOT NULL.
func describeViolation(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "constraint violation"
	}
	if pgErr.Code == notNullViolationCode {
		return fmt.Sprintf("not null violation (%s)", pgErr.ColumnName)
	}
	return fmt.Sprintf("constraint violation (%s)", pgErr.ConstraintName)
}

// IsConstraintViolation reports whether err is a PostgreSQL integrity violation.
func IsConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case uniqueViolationCode, checkViolationCode, notNullViolationCode:
		return true
	}
	return false
}

// rowsAffected reads the affected row count of an UPDATE or DELETE.
func rowsAffected(result sql.Result) (int64, error) {
	if result == nil {
		return 0, fmt.Errorf("nil result")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
