package sqldb

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/memoboard-api/internal/domain"
	"github.com/phrazzld/memoboard-api/internal/store"
)

// row is one raw result row keyed by lower-cased column name, so records
// map the same way whether the schema spells a column BR_SEQ or br_seq.
type row struct {
	entity string
	values map[string]any
}

// timeLayouts are tried when a driver hands back a timestamp as text.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// scanRows reads every remaining row of rows. It closes rows.
func scanRows(rows *sql.Rows, entity string) ([]row, error) {
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = strings.ToLower(c)
	}

	var out []row
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		r := row{entity: entity, values: make(map[string]any, len(cols))}
		for i, name := range names {
			r.values[name] = vals[i]
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r row) lookup(col string) (any, error) {
	v, ok := r.values[col]
	if !ok {
		return nil, &store.MappingError{Entity: r.entity, Column: col, Reason: "column missing from result"}
	}
	return v, nil
}

func (r row) mismatch(col string, v any) error {
	return &store.MappingError{
		Entity: r.entity,
		Column: col,
		Reason: fmt.Sprintf("unexpected value type %T", v),
	}
}

// int64 reads a required integer column. NULL is a mapping error.
func (r row) int64(col string) (int64, error) {
	v, err := r.lookup(col)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case []byte:
		return r.parseInt(col, string(n))
	case string:
		return r.parseInt(col, n)
	default:
		return 0, r.mismatch(col, v)
	}
}

func (r row) parseInt(col, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &store.MappingError{Entity: r.entity, Column: col, Reason: err.Error()}
	}
	return n, nil
}

// string reads a text column. NULL maps to the empty string.
func (r row) string(col string) (string, error) {
	v, err := r.lookup(col)
	if err != nil {
		return "", err
	}
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return "", r.mismatch(col, v)
	}
}

// time reads a timestamp column. NULL maps to the zero time.
func (r row) time(col string) (time.Time, error) {
	v, err := r.lookup(col)
	if err != nil {
		return time.Time{}, err
	}
	var text string
	switch t := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return t, nil
	case string:
		text = t
	case []byte:
		text = string(t)
	default:
		return time.Time{}, r.mismatch(col, v)
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, &store.MappingError{Entity: r.entity, Column: col, Reason: "unparseable timestamp " + strconv.Quote(text)}
}

// mapPost converts a tboard row.
func mapPost(r row) (domain.Post, error) {
	var (
		p   domain.Post
		err error
	)
	if p.Seq, err = r.int64("br_seq"); err != nil {
		return domain.Post{}, err
	}
	if p.Category, err = r.string("br_cd"); err != nil {
		return domain.Post{}, err
	}
	if p.Title, err = r.string("br_title"); err != nil {
		return domain.Post{}, err
	}
	if p.Content, err = r.string("br_content"); err != nil {
		return domain.Post{}, err
	}
	if p.File, err = r.string("br_file"); err != nil {
		return domain.Post{}, err
	}
	if p.RegID, err = r.string("br_reg_id"); err != nil {
		return domain.Post{}, err
	}
	if p.RegDate, err = r.time("br_reg_dt"); err != nil {
		return domain.Post{}, err
	}
	return p, nil
}

// mapMemo converts a memo row.
func mapMemo(r row) (domain.Memo, error) {
	var (
		m   domain.Memo
		err error
	)
	if m.ID, err = r.int64("fid"); err != nil {
		return domain.Memo{}, err
	}
	if m.Title, err = r.string("ftitle"); err != nil {
		return domain.Memo{}, err
	}
	if m.Content, err = r.string("fcontent"); err != nil {
		return domain.Memo{}, err
	}
	if m.CreatedAt, err = r.time("fcreated_at"); err != nil {
		return domain.Memo{}, err
	}
	return m, nil
}

// mapMemoSummary converts the reduced memo row used by statistics.
func mapMemoSummary(r row) (domain.MemoSummary, error) {
	var (
		s   domain.MemoSummary
		err error
	)
	if s.ID, err = r.int64("fid"); err != nil {
		return domain.MemoSummary{}, err
	}
	if s.Title, err = r.string("ftitle"); err != nil {
		return domain.MemoSummary{}, err
	}
	if s.CreatedAt, err = r.time("fcreated_at"); err != nil {
		return domain.MemoSummary{}, err
	}
	return s, nil
}

// mapAll applies fn to every row, stopping at the first mapping error.
func mapAll[T any](rows []row, fn func(row) (T, error)) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		v, err := fn(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
