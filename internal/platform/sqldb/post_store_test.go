package sqldb_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/memoboard-api/internal/domain"
	"github.com/phrazzld/memoboard-api/internal/platform/sqldb"
	"github.com/phrazzld/memoboard-api/internal/store"
	"github.com/phrazzld/memoboard-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostStore(t *testing.T) (*sqldb.PostStore, *sql.DB) {
	t.Helper()
	db := testdb.OpenSQLite(t)
	return sqldb.NewPostStore(db, sqldb.SQLite(true), nil), db
}

func mustPage(t *testing.T, page, size int) domain.PageRequest {
	t.Helper()
	req, err := domain.NewPageRequest(page, size)
	require.NoError(t, err)
	return req
}

func insertPosts(t *testing.T, s *sqldb.PostStore, category string, n int) []int64 {
	t.Helper()
	seqs := make([]int64, 0, n)
	for i := 1; i <= n; i++ {
		seq, err := s.Insert(context.Background(), domain.PostFields{
			Category: category,
			Title:    fmt.Sprintf("title %d", i),
			Content:  fmt.Sprintf("content %d", i),
			RegID:    domain.DefaultAuthor,
		})
		require.NoError(t, err)
		seqs = append(seqs, seq)
	}
	return seqs
}

func TestPostStore_InsertAndGet(t *testing.T) {
	t.Parallel()

	s, _ := newPostStore(t)
	ctx := context.Background()

	seq, err := s.Insert(ctx, domain.PostFields{
		Category: "B1",
		Title:    "Notice",
		Content:  "Read me",
		File:     "a.pdf",
		RegID:    "admin",
	})
	require.NoError(t, err)
	assert.Positive(t, seq)

	post, err := s.GetBySeq(ctx, seq)
	require.NoError(t, err)
	assert.Equal(t, seq, post.Seq)
	assert.Equal(t, "B1", post.Category)
	assert.Equal(t, "Notice", post.Title)
	assert.Equal(t, "Read me", post.Content)
	assert.Equal(t, "a.pdf", post.File)
	assert.Equal(t, "admin", post.RegID)
	assert.False(t, post.RegDate.IsZero(), "registration date should be set by the database")
}

func TestPostStore_InsertReturnsIncreasingSeq(t *testing.T) {
	t.Parallel()

	s, _ := newPostStore(t)
	seqs := insertPosts(t, s, "B2", 3)
	assert.Less(t, seqs[0], seqs[1])
	assert.Less(t, seqs[1], seqs[2])
}

func TestPostStore_GetBySeq_NotFound(t *testing.T) {
	t.Parallel()

	s, _ := newPostStore(t)
	_, err := s.GetBySeq(context.Background(), 999)
	assert.ErrorIs(t, err, store.ErrPostNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestPostStore_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	s, _ := newPostStore(t)
	ctx := context.Background()
	seq := insertPosts(t, s, "B1", 1)[0]

	n, err := s.Update(ctx, seq, domain.PostUpdate{Title: "new", Content: "changed", File: ""})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	post, err := s.GetBySeq(ctx, seq)
	require.NoError(t, err)
	assert.Equal(t, "new", post.Title)
	assert.Equal(t, "changed", post.Content)
	assert.Equal(t, "B1", post.Category, "category is not mutable")

	n, err = s.Update(ctx, seq+100, domain.PostUpdate{Title: "x"})
	require.NoError(t, err)
	assert.Zero(t, n, "updating a missing post affects no rows")

	n, err = s.Delete(ctx, seq)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.Delete(ctx, seq)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = s.GetBySeq(ctx, seq)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPostStore_ListByCategory(t *testing.T) {
	t.Parallel()

	s, _ := newPostStore(t)
	ctx := context.Background()
	seqs := insertPosts(t, s, "B1", 25)
	insertPosts(t, s, "B2", 4)

	t.Run("first page newest first", func(t *testing.T) {
		page, err := s.ListByCategory(ctx, "B1", "", mustPage(t, 1, 10))
		require.NoError(t, err)
		assert.Equal(t, int64(25), page.TotalCount)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, 1, page.CurrentPage)
		assert.Equal(t, 10, page.Size)
		require.Len(t, page.Items, 10)
		assert.Equal(t, seqs[24], page.Items[0].Seq)
		for i := 1; i < len(page.Items); i++ {
			assert.Greater(t, page.Items[i-1].Seq, page.Items[i].Seq)
		}
	})

	t.Run("last partial page", func(t *testing.T) {
		page, err := s.ListByCategory(ctx, "B1", "", mustPage(t, 3, 10))
		require.NoError(t, err)
		require.Len(t, page.Items, 5)
		assert.Equal(t, seqs[0], page.Items[4].Seq)
	})

	t.Run("page zero clamps to first page", func(t *testing.T) {
		zero, err := s.ListByCategory(ctx, "B1", "", mustPage(t, 0, 10))
		require.NoError(t, err)
		first, err := s.ListByCategory(ctx, "B1", "", mustPage(t, 1, 10))
		require.NoError(t, err)
		assert.Equal(t, first, zero)
	})

	t.Run("past the end is empty", func(t *testing.T) {
		page, err := s.ListByCategory(ctx, "B1", "", mustPage(t, 9, 10))
		require.NoError(t, err)
		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
		assert.Equal(t, int64(25), page.TotalCount)
	})

	t.Run("last representable page is empty", func(t *testing.T) {
		page, err := s.ListByCategory(ctx, "B1", "", mustPage(t, math.MaxInt/10+1, 10))
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, int64(25), page.TotalCount)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, math.MaxInt/10+1, page.CurrentPage)
	})

	t.Run("largest size holds the board", func(t *testing.T) {
		page, err := s.ListByCategory(ctx, "B1", "", mustPage(t, 1, domain.MaxPageSize))
		require.NoError(t, err)
		assert.Len(t, page.Items, 25)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("empty category", func(t *testing.T) {
		page, err := s.ListByCategory(ctx, "B3", "", mustPage(t, 1, 10))
		require.NoError(t, err)
		assert.Zero(t, page.TotalCount)
		assert.Zero(t, page.TotalPages)
		assert.NotNil(t, page.Items)
	})
}

func TestPostStore_Search(t *testing.T) {
	t.Parallel()

	s, _ := newPostStore(t)
	ctx := context.Background()

	for _, f := range []domain.PostFields{
		{Category: "B2", Title: "Go tips", Content: "channels"},
		{Category: "B2", Title: "Lunch", Content: "learning GO today"},
		{Category: "B2", Title: "Weather", Content: "rain"},
		{Category: "B1", Title: "Go notice", Content: "other board"},
	} {
		_, err := s.Insert(ctx, f)
		require.NoError(t, err)
	}

	t.Run("matches title or content in category", func(t *testing.T) {
		page, err := s.ListByCategory(ctx, "B2", "go", mustPage(t, 1, 10))
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.TotalCount)
		require.Len(t, page.Items, 2)
		assert.Equal(t, "Lunch", page.Items[0].Title)
		assert.Equal(t, "Go tips", page.Items[1].Title)
	})

	t.Run("empty keyword equals unfiltered list", func(t *testing.T) {
		filtered, err := s.ListByCategory(ctx, "B2", "", mustPage(t, 1, 10))
		require.NoError(t, err)
		assert.Equal(t, int64(3), filtered.TotalCount)
	})

	t.Run("no match", func(t *testing.T) {
		page, err := s.ListByCategory(ctx, "B2", "zzz", mustPage(t, 1, 10))
		require.NoError(t, err)
		assert.Zero(t, page.TotalCount)
		assert.Empty(t, page.Items)
	})
}

func TestPostStore_CaseSensitiveSearch(t *testing.T) {
	t.Parallel()

	db := testdb.OpenSQLite(t)
	s := sqldb.NewPostStore(db, sqldb.SQLite(false), nil)
	ctx := context.Background()

	_, err := s.Insert(ctx, domain.PostFields{Category: "B2", Title: "Go tips"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, domain.PostFields{Category: "B2", Title: "go home"})
	require.NoError(t, err)

	page, err := s.ListByCategory(ctx, "B2", "Go", mustPage(t, 1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Go tips", page.Items[0].Title)
}

func TestPostStore_CountByCategory(t *testing.T) {
	t.Parallel()

	s, _ := newPostStore(t)
	insertPosts(t, s, "B1", 2)
	insertPosts(t, s, "B3", 1)

	n, err := s.CountByCategory(context.Background(), "B1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = s.CountByCategory(context.Background(), "B9")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPostStore_WithTx(t *testing.T) {
	t.Parallel()

	s, db := newPostStore(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		_, err := s.WithTx(tx).Insert(ctx, domain.PostFields{Category: "B1", Title: "draft"})
		require.NoError(t, err)
	})

	n, err := s.CountByCategory(ctx, "B1")
	require.NoError(t, err)
	assert.Zero(t, n, "rolled back insert must not be visible")
}

func TestPostStore_ExecutionErrors(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	s := sqldb.NewPostStore(db, sqldb.Postgres(true), nil)
	ctx := context.Background()
	boom := errors.New("connection refused")

	t.Run("count failure", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT").WillReturnError(boom)

		_, err := s.ListByCategory(ctx, "B1", "", mustPage(t, 1, 10))
		assert.ErrorIs(t, err, store.ErrExecution)
		assert.ErrorIs(t, err, boom)

		var execErr *store.ExecutionError
		require.True(t, errors.As(err, &execErr))
		assert.Equal(t, "post", execErr.Entity)
		assert.Equal(t, "count", execErr.Operation)
	})

	t.Run("window failure", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT").
			WithArgs("B1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectQuery("SELECT br_seq").
			WithArgs("B1", 10, 0).
			WillReturnError(boom)

		_, err := s.ListByCategory(ctx, "B1", "", mustPage(t, 1, 10))
		assert.ErrorIs(t, err, store.ErrExecution)
	})

	t.Run("insert failure", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO tboard").WillReturnError(boom)

		_, err := s.Insert(ctx, domain.PostFields{Category: "B1"})
		assert.ErrorIs(t, err, store.ErrExecution)
	})

	t.Run("update failure", func(t *testing.T) {
		mock.ExpectExec("UPDATE tboard").WillReturnError(boom)

		_, err := s.Update(ctx, 1, domain.PostUpdate{})
		assert.ErrorIs(t, err, store.ErrExecution)
	})

	t.Run("missing column is a mapping error", func(t *testing.T) {
		mock.ExpectQuery("SELECT br_seq").
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"br_seq", "br_cd"}).AddRow(4, "B1"))

		_, err := s.GetBySeq(ctx, 4)
		assert.ErrorIs(t, err, store.ErrMapping)
		assert.NotErrorIs(t, err, store.ErrExecution)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
