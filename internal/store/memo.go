package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/memoboard-api/internal/domain"
)

// MemoStore defines the interface for memo persistence.
type MemoStore interface {
	// Insert writes a new memo and returns its assigned identifier.
	Insert(ctx context.Context, fields domain.MemoFields) (int64, error)

	// Update overwrites title and content of memo id and returns the number
	// of rows affected. Zero rows is not an error.
	Update(ctx context.Context, id int64, fields domain.MemoFields) (int64, error)

	// Delete removes memo id and returns the number of rows affected.
	Delete(ctx context.Context, id int64) (int64, error)

	// GetByID retrieves a memo by its identifier.
	// Returns ErrMemoNotFound if the memo does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Memo, error)

	// List returns memos newest first, optionally filtered by keyword.
	// A nil page returns every matching memo.
	List(ctx context.Context, keyword string, page *domain.PageRequest) (domain.Page[domain.Memo], error)

	// Stats aggregates memo counts and the most recent memos.
	Stats(ctx context.Context) (*domain.MemoStats, error)

	// WithTx returns a new MemoStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) MemoStore
}
