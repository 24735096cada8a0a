package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/memoboard-api/internal/domain"
	"github.com/phrazzld/memoboard-api/internal/store"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPostStore mocks store.PostStore. WithTx returns the mock itself so
// expectations hold inside transactions.
type MockPostStore struct {
	mock.Mock
}

func (m *MockPostStore) Insert(ctx context.Context, fields domain.PostFields) (int64, error) {
	args := m.Called(ctx, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostStore) Update(ctx context.Context, seq int64, update domain.PostUpdate) (int64, error) {
	args := m.Called(ctx, seq, update)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostStore) Delete(ctx context.Context, seq int64) (int64, error) {
	args := m.Called(ctx, seq)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostStore) GetBySeq(ctx context.Context, seq int64) (*domain.Post, error) {
	args := m.Called(ctx, seq)
	post, _ := args.Get(0).(*domain.Post)
	return post, args.Error(1)
}

func (m *MockPostStore) CountByCategory(ctx context.Context, category string) (int64, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostStore) ListByCategory(
	ctx context.Context,
	category string,
	keyword string,
	page domain.PageRequest,
) (domain.Page[domain.Post], error) {
	args := m.Called(ctx, category, keyword, page)
	return args.Get(0).(domain.Page[domain.Post]), args.Error(1)
}

func (m *MockPostStore) WithTx(*sql.Tx) store.PostStore {
	return m
}

// MockMemoStore mocks store.MemoStore.
type MockMemoStore struct {
	mock.Mock
}

func (m *MockMemoStore) Insert(ctx context.Context, fields domain.MemoFields) (int64, error) {
	args := m.Called(ctx, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMemoStore) Update(ctx context.Context, id int64, fields domain.MemoFields) (int64, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMemoStore) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMemoStore) GetByID(ctx context.Context, id int64) (*domain.Memo, error) {
	args := m.Called(ctx, id)
	memo, _ := args.Get(0).(*domain.Memo)
	return memo, args.Error(1)
}

func (m *MockMemoStore) List(
	ctx context.Context,
	keyword string,
	page *domain.PageRequest,
) (domain.Page[domain.Memo], error) {
	args := m.Called(ctx, keyword, page)
	return args.Get(0).(domain.Page[domain.Memo]), args.Error(1)
}

func (m *MockMemoStore) Stats(ctx context.Context) (*domain.MemoStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*domain.MemoStats)
	return stats, args.Error(1)
}

func (m *MockMemoStore) WithTx(*sql.Tx) store.MemoStore {
	return m
}

// newTxDB returns a sqlmock database for services that open transactions.
// Expectations are verified when the test ends.
func newTxDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

var anyCtx = mock.Anything
