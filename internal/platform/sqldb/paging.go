package sqldb

import (
	"context"
	"fmt"
	"strings"

	"github.com/phrazzld/memoboard-api/internal/domain"
	"github.com/phrazzld/memoboard-api/internal/store"
)

// listSpec describes one pageable table.
type listSpec[T any] struct {
	entity        string
	table         string
	columns       []string
	orderBy       string
	searchColumns []string
	mapRow        func(row) (T, error)
}

// listFilter narrows a listing. An empty equalValue or keyword skips the
// corresponding condition.
type listFilter struct {
	equalColumn string
	equalValue  string
	keyword     string
}

// whereClause builds the WHERE clause and its arguments, numbering
// placeholders from $1.
func (f listFilter) whereClause(d Dialect, searchColumns []string) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.equalColumn != "" {
		args = append(args, f.equalValue)
		conds = append(conds, fmt.Sprintf("%s = $%d", f.equalColumn, len(args)))
	}
	if f.keyword != "" && len(searchColumns) > 0 {
		args = append(args, d.containsPattern(f.keyword))
		conds = append(conds, d.containsAny(searchColumns, fmt.Sprintf("$%d", len(args))))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// listPage counts the rows matching filter, then reads the requested window
// ordered by spec.orderBy. A nil page reads every matching row.
//
// The count and the window run as two statements without a shared snapshot,
// so a concurrent write can make them disagree by a row.
func listPage[T any](
	ctx context.Context,
	db store.DBTX,
	d Dialect,
	spec listSpec[T],
	filter listFilter,
	page *domain.PageRequest,
) (domain.Page[T], error) {
	where, args := filter.whereClause(d, spec.searchColumns)

	var total int64
	countQuery := "SELECT COUNT(*) FROM " + spec.table + where
	if err := db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return domain.Page[T]{}, store.NewExecutionError(spec.entity, "count", MapError(err))
	}

	query := "SELECT " + strings.Join(spec.columns, ", ") + " FROM " + spec.table + where +
		" ORDER BY " + spec.orderBy
	windowArgs := args
	if page != nil {
		n := len(args)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)
		windowArgs = append(append([]any{}, args...), page.Size, page.Offset())
	}

	rows, err := db.QueryContext(ctx, query, windowArgs...)
	if err != nil {
		return domain.Page[T]{}, store.NewExecutionError(spec.entity, "list", MapError(err))
	}
	raw, err := scanRows(rows, spec.entity)
	if err != nil {
		return domain.Page[T]{}, store.NewExecutionError(spec.entity, "list", MapError(err))
	}

	items, err := mapAll(raw, spec.mapRow)
	if err != nil {
		return domain.Page[T]{}, err
	}
	return domain.NewPage(items, total, page), nil
}
