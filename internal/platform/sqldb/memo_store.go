package sqldb

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/memoboard-api/internal/domain"
	"github.com/phrazzld/memoboard-api/internal/platform/logger"
	"github.com/phrazzld/memoboard-api/internal/store"
)

const memoEntity = "memo"

var memoList = listSpec[domain.Memo]{
	entity:        memoEntity,
	table:         "memo",
	columns:       []string{"fid", "ftitle", "fcontent", "fcreated_at"},
	orderBy:       "fid DESC",
	searchColumns: []string{"ftitle", "fcontent"},
	mapRow:        mapMemo,
}

// MemoStore implements store.MemoStore over the memo table.
type MemoStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

// NewMemoStore creates a MemoStore. db may be a pool or a transaction and
// is owned by the caller. If logger is nil, slog.Default is used.
func NewMemoStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *MemoStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "memo_store")),
	}
}

var _ store.MemoStore = (*MemoStore)(nil)

// Insert implements store.MemoStore.Insert.
func (s *MemoStore) Insert(ctx context.Context, fields domain.MemoFields) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO memo (ftitle, fcontent) VALUES ($1, $2) RETURNING fid`,
		fields.Title, fields.Content,
	).Scan(&id)
	if err != nil {
		log.Error("failed to insert memo", slog.String("error", err.Error()))
		return 0, store.NewExecutionError(memoEntity, "insert", MapError(err))
	}

	log.Info("memo inserted", slog.Int64("fid", id))
	return id, nil
}

// Update implements store.MemoStore.Update.
func (s *MemoStore) Update(ctx context.Context, id int64, fields domain.MemoFields) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`UPDATE memo SET ftitle = $1, fcontent = $2 WHERE fid = $3`,
		fields.Title, fields.Content, id)
	if err != nil {
		log.Error("failed to update memo",
			slog.String("error", err.Error()),
			slog.Int64("fid", id))
		return 0, store.NewExecutionError(memoEntity, "update", MapError(err))
	}

	n, err := rowsAffected(result)
	if err != nil {
		return 0, store.NewExecutionError(memoEntity, "update", err)
	}
	log.Debug("memo updated", slog.Int64("fid", id), slog.Int64("rows_affected", n))
	return n, nil
}

// Delete implements store.MemoStore.Delete.
func (s *MemoStore) Delete(ctx context.Context, id int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM memo WHERE fid = $1`, id)
	if err != nil {
		log.Error("failed to delete memo",
			slog.String("error", err.Error()),
			slog.Int64("fid", id))
		return 0, store.NewExecutionError(memoEntity, "delete", MapError(err))
	}

	n, err := rowsAffected(result)
	if err != nil {
		return 0, store.NewExecutionError(memoEntity, "delete", err)
	}
	log.Debug("memo deleted", slog.Int64("fid", id), slog.Int64("rows_affected", n))
	return n, nil
}

// GetByID implements store.MemoStore.GetByID.
func (s *MemoStore) GetByID(ctx context.Context, id int64) (*domain.Memo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT fid, ftitle, fcontent, fcreated_at FROM memo WHERE fid = $1`, id)
	if err != nil {
		log.Error("failed to get memo",
			slog.String("error", err.Error()),
			slog.Int64("fid", id))
		return nil, store.NewExecutionError(memoEntity, "get", MapError(err))
	}
	raw, err := scanRows(rows, memoEntity)
	if err != nil {
		return nil, store.NewExecutionError(memoEntity, "get", MapError(err))
	}
	if len(raw) == 0 {
		log.Debug("memo not found", slog.Int64("fid", id))
		return nil, store.ErrMemoNotFound
	}

	memo, err := mapMemo(raw[0])
	if err != nil {
		return nil, err
	}
	return &memo, nil
}

// List implements store.MemoStore.List.
func (s *MemoStore) List(ctx context.Context, keyword string, page *domain.PageRequest) (domain.Page[domain.Memo], error) {
	result, err := listPage(ctx, s.db, s.dialect, memoList, listFilter{keyword: keyword}, page)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list memos",
			slog.String("error", err.Error()),
			slog.Bool("filtered", keyword != ""))
		return domain.Page[domain.Memo]{}, err
	}
	return result, nil
}

// Stats implements store.MemoStore.Stats.
func (s *MemoStore) Stats(ctx context.Context) (*domain.MemoStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var stats domain.MemoStats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(CASE WHEN ftitle IS NOT NULL AND ftitle <> '' THEN 1 END),
			COUNT(CASE WHEN fcontent IS NOT NULL AND fcontent <> '' THEN 1 END)
		FROM memo
	`).Scan(&stats.Total, &stats.Titled, &stats.WithContent)
	if err != nil {
		log.Error("failed to count memos", slog.String("error", err.Error()))
		return nil, store.NewExecutionError(memoEntity, "stats", MapError(err))
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT fid, ftitle, fcreated_at
		FROM memo
		ORDER BY fcreated_at DESC, fid DESC
		LIMIT $1
	`, domain.RecentMemoLimit)
	if err != nil {
		log.Error("failed to read recent memos", slog.String("error", err.Error()))
		return nil, store.NewExecutionError(memoEntity, "stats", MapError(err))
	}
	raw, err := scanRows(rows, memoEntity)
	if err != nil {
		return nil, store.NewExecutionError(memoEntity, "stats", MapError(err))
	}
	if stats.Recent, err = mapAll(raw, mapMemoSummary); err != nil {
		return nil, err
	}
	return &stats, nil
}

// WithTx implements store.MemoStore.WithTx.
func (s *MemoStore) WithTx(tx *sql.Tx) store.MemoStore {
	return &MemoStore{
		db:      tx,
		dialect: s.dialect,
		logger:  s.logger,
	}
}
