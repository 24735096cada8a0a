package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/memoboard-api/internal/domain"
	"github.com/phrazzld/memoboard-api/internal/store"
)

// MemoService provides memo operations.
type MemoService interface {
	// ListMemos returns memos newest first. A nil page returns all of them.
	ListMemos(ctx context.Context, page *domain.PageRequest) (domain.Page[domain.Memo], error)

	// SearchMemos is ListMemos restricted to memos whose title or content
	// contains keyword. An empty keyword behaves exactly like ListMemos.
	SearchMemos(ctx context.Context, keyword string, page *domain.PageRequest) (domain.Page[domain.Memo], error)

	// GetMemo retrieves a memo by identifier.
	GetMemo(ctx context.Context, id int64) (*domain.Memo, error)

	// UpsertMemo inserts a memo when id does not resolve to a positive
	// number and updates memo id otherwise.
	UpsertMemo(ctx context.Context, id domain.OptionalID, title, content string) (WriteResult, error)

	// DeleteMemo removes a memo.
	DeleteMemo(ctx context.Context, id int64) (WriteResult, error)

	// MemoStats aggregates memo counts and the most recent memos.
	MemoStats(ctx context.Context) (*domain.MemoStats, error)
}

type memoServiceImpl struct {
	db     store.TxBeginner
	memos  store.MemoStore
	logger *slog.Logger
}

// NewMemoService creates a MemoService. db starts the transactions that
// writes run in; memos must be bound to the same database.
func NewMemoService(db store.TxBeginner, memos store.MemoStore, logger *slog.Logger) (MemoService, error) {
	if db == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if memos == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "memos cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &memoServiceImpl{
		db:     db,
		memos:  memos,
		logger: logger.With("component", "memo_service"),
	}, nil
}

// ListMemos implements MemoService.ListMemos.
func (s *memoServiceImpl) ListMemos(ctx context.Context, page *domain.PageRequest) (domain.Page[domain.Memo], error) {
	return s.SearchMemos(ctx, "", page)
}

// SearchMemos implements MemoService.SearchMemos.
func (s *memoServiceImpl) SearchMemos(
	ctx context.Context,
	keyword string,
	page *domain.PageRequest,
) (domain.Page[domain.Memo], error) {
	result, err := s.memos.List(ctx, keyword, page)
	if err != nil {
		s.logger.Error("failed to list memos", "error", err, "filtered", keyword != "")
		return domain.Page[domain.Memo]{}, NewServiceError("list_memos", "failed to list memos", err)
	}
	return result, nil
}

// GetMemo implements MemoService.GetMemo.
func (s *memoServiceImpl) GetMemo(ctx context.Context, id int64) (*domain.Memo, error) {
	memo, err := s.memos.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("get_memo", "failed to retrieve memo", err)
	}
	return memo, nil
}

// UpsertMemo implements MemoService.UpsertMemo.
//
// Identifiers that fail to parse are logged and treated as absent, so the
// write becomes an insert.
func (s *memoServiceImpl) UpsertMemo(
	ctx context.Context,
	id domain.OptionalID,
	title, content string,
) (WriteResult, error) {
	fields, err := domain.NewMemoFields(title, content)
	if err != nil {
		return WriteResult{}, err
	}

	if id.Kind() == domain.IDInvalid {
		s.logger.Warn("ignoring unparseable memo id",
			"fid", id.Raw(),
			"error", id.Cause())
	}

	var result WriteResult
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		memos := s.memos.WithTx(tx)

		target, ok := id.Resolve()
		if !ok {
			newID, err := memos.Insert(ctx, fields)
			if err != nil {
				return NewServiceError("upsert_memo", "failed to insert memo", err)
			}
			result = WriteResult{ID: newID, Action: ActionInsert, RowsAffected: 1}
			return nil
		}

		n, err := memos.Update(ctx, target, fields)
		if err != nil {
			return NewServiceError("upsert_memo", "failed to update memo", err)
		}
		result = WriteResult{ID: target, Action: ActionUpdate, RowsAffected: n}
		return nil
	})
	if err != nil {
		return WriteResult{}, NewServiceError("upsert_memo", "transaction failed", err)
	}

	s.logger.Info("memo upserted",
		"fid", result.ID,
		"action", string(result.Action),
		"rows_affected", result.RowsAffected)
	return result, nil
}

// DeleteMemo implements MemoService.DeleteMemo.
func (s *memoServiceImpl) DeleteMemo(ctx context.Context, id int64) (WriteResult, error) {
	var n int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		n, err = s.memos.WithTx(tx).Delete(ctx, id)
		if err != nil {
			return NewServiceError("delete_memo", "failed to delete memo", err)
		}
		return nil
	})
	if err != nil {
		return WriteResult{}, NewServiceError("delete_memo", "transaction failed", err)
	}
	return WriteResult{ID: id, Action: ActionDelete, RowsAffected: n}, nil
}

// MemoStats implements MemoService.MemoStats.
func (s *memoServiceImpl) MemoStats(ctx context.Context) (*domain.MemoStats, error) {
	stats, err := s.memos.Stats(ctx)
	if err != nil {
		s.logger.Error("failed to compute memo stats", "error", err)
		return nil, NewServiceError("memo_stats", "failed to compute memo stats", err)
	}
	return stats, nil
}
