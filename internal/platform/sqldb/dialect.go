package sqldb

import (
	"fmt"
	"strings"
)

// Driver names registered with database/sql.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// Dialect captures the SQL differences between the supported databases.
// Both accept $N placeholders and INSERT ... RETURNING; they differ in how
// a substring match is spelled.
type Dialect struct {
	driver          string
	caseInsensitive bool
}

// Postgres returns the PostgreSQL dialect. Case-insensitive matching uses
// ILIKE, case-sensitive matching uses LIKE.
func Postgres(caseInsensitive bool) Dialect {
	return Dialect{driver: DriverPostgres, caseInsensitive: caseInsensitive}
}

// SQLite returns the SQLite dialect. Case-insensitive matching uses LIKE,
// which folds ASCII letters only; case-sensitive matching uses GLOB.
func SQLite(caseInsensitive bool) Dialect {
	return Dialect{driver: DriverSQLite, caseInsensitive: caseInsensitive}
}

// DialectFor returns the dialect for a database/sql driver name.
func DialectFor(driver string, caseInsensitive bool) (Dialect, error) {
	switch driver {
	case DriverPostgres:
		return Postgres(caseInsensitive), nil
	case DriverSQLite:
		return SQLite(caseInsensitive), nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Driver returns the database/sql driver name.
func (d Dialect) Driver() string {
	return d.driver
}

// CaseInsensitive reports whether keyword matching folds case.
func (d Dialect) CaseInsensitive() bool {
	return d.caseInsensitive
}

// containsAny returns a condition matching rows where any of columns
// matches the pattern bound to param.
func (d Dialect) containsAny(columns []string, param string) string {
	op := "LIKE"
	switch {
	case d.driver == DriverPostgres && d.caseInsensitive:
		op = "ILIKE"
	case d.driver == DriverSQLite && !d.caseInsensitive:
		op = "GLOB"
	}

	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("%s %s %s", col, op, param)
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// containsPattern wraps keyword in the wildcards of the match operator.
// The keyword itself is not escaped, so wildcard characters in it keep
// their meaning.
func (d Dialect) containsPattern(keyword string) string {
	if d.driver == DriverSQLite && !d.caseInsensitive {
		return "*" + keyword + "*"
	}
	return "%" + keyword + "%"
}
