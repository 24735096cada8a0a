package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/memoboard-api/internal/domain"
)

// PostStore defines the interface for board post persistence.
type PostStore interface {
	// Insert writes a new post and returns the sequence number the database
	// assigned to it.
	Insert(ctx context.Context, fields domain.PostFields) (int64, error)

	// Update overwrites the mutable columns of post seq and returns the
	// number of rows affected. Zero rows is not an error.
	Update(ctx context.Context, seq int64, update domain.PostUpdate) (int64, error)

	// Delete removes post seq and returns the number of rows affected.
	Delete(ctx context.Context, seq int64) (int64, error)

	// GetBySeq retrieves a post by its sequence number.
	// Returns ErrPostNotFound if the post does not exist.
	GetBySeq(ctx context.Context, seq int64) (*domain.Post, error)

	// CountByCategory counts posts in a board category.
	CountByCategory(ctx context.Context, category string) (int64, error)

	// ListByCategory returns one page of a category, newest first. A
	// non-empty keyword restricts the result to posts whose title or
	// content contains it.
	ListByCategory(
		ctx context.Context,
		category string,
		keyword string,
		page domain.PageRequest,
	) (domain.Page[domain.Post], error)

	// WithTx returns a new PostStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) PostStore
}
