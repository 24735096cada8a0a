//go:build integration

package sqldb_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/phrazzld/memoboard-api/internal/domain"
	"github.com/phrazzld/memoboard-api/internal/platform/sqldb"
	"github.com/phrazzld/memoboard-api/internal/store"
	"github.com/phrazzld/memoboard-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests share one PostgreSQL database and must not run in parallel.

func TestPostgres_PostStore(t *testing.T) {
	db := testdb.OpenPostgres(t)
	s := sqldb.NewPostStore(db, sqldb.Postgres(true), nil)
	ctx := context.Background()

	var seqs []int64
	for i := 1; i <= 12; i++ {
		seq, err := s.Insert(ctx, domain.PostFields{
			Category: "B2",
			Title:    fmt.Sprintf("Title %d", i),
			Content:  "content",
			RegID:    domain.DefaultAuthor,
		})
		require.NoError(t, err)
		seqs = append(seqs, seq)
	}
	assert.Less(t, seqs[0], seqs[len(seqs)-1])

	page, err := s.ListByCategory(ctx, "B2", "", mustPage(t, 2, 5))
	require.NoError(t, err)
	assert.EqualValues(t, 12, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 5)
	assert.Equal(t, seqs[6], page.Items[0].Seq)

	found, err := s.ListByCategory(ctx, "B2", "title 1", mustPage(t, 1, 10))
	require.NoError(t, err)
	// Title 1, Title 10, Title 11, Title 12
	assert.EqualValues(t, 4, found.TotalCount)

	post, err := s.GetBySeq(ctx, seqs[0])
	require.NoError(t, err)
	assert.False(t, post.RegDate.IsZero())

	n, err := s.Delete(ctx, seqs[0])
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = s.GetBySeq(ctx, seqs[0])
	assert.ErrorIs(t, err, store.ErrPostNotFound)
}

func TestPostgres_MemoStore(t *testing.T) {
	db := testdb.OpenPostgres(t)
	s := sqldb.NewMemoStore(db, sqldb.Postgres(false), nil)
	ctx := context.Background()

	id, err := s.Insert(ctx, domain.MemoFields{Title: "Groceries", Content: "milk"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, domain.MemoFields{Content: "no title"})
	require.NoError(t, err)

	n, err := s.Update(ctx, id, domain.MemoFields{Title: "Groceries", Content: "milk, eggs"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	sensitive, err := s.List(ctx, "groceries", nil)
	require.NoError(t, err)
	assert.Empty(t, sensitive.Items)

	exact, err := s.List(ctx, "Groceries", nil)
	require.NoError(t, err)
	require.Len(t, exact.Items, 1)
	assert.Equal(t, "milk, eggs", exact.Items[0].Content)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Total)
	assert.EqualValues(t, 1, stats.Titled)
	assert.EqualValues(t, 2, stats.WithContent)
	assert.Len(t, stats.Recent, 2)
}
