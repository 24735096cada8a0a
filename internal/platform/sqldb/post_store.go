package sqldb

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/memoboard-api/internal/domain"
	"github.com/phrazzld/memoboard-api/internal/platform/logger"
	"github.com/phrazzld/memoboard-api/internal/store"
)

const postEntity = "post"

var postColumns = []string{
	"br_seq", "br_cd", "br_title", "br_content", "br_file", "br_reg_id", "br_reg_dt",
}

var postList = listSpec[domain.Post]{
	entity:        postEntity,
	table:         "tboard",
	columns:       postColumns,
	orderBy:       "br_seq DESC",
	searchColumns: []string{"br_title", "br_content"},
	mapRow:        mapPost,
}

// PostStore implements store.PostStore over the tboard table.
type PostStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

// NewPostStore creates a PostStore. db may be a pool or a transaction and
// is owned by the caller. If logger is nil, slog.Default is used.
func NewPostStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *PostStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "post_store")),
	}
}

var _ store.PostStore = (*PostStore)(nil)

// Insert implements store.PostStore.Insert.
func (s *PostStore) Insert(ctx context.Context, fields domain.PostFields) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO tboard (br_cd, br_title, br_content, br_file, br_reg_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING br_seq
	`
	var seq int64
	err := s.db.QueryRowContext(ctx, query,
		fields.Category,
		fields.Title,
		fields.Content,
		fields.File,
		fields.RegID,
	).Scan(&seq)
	if err != nil {
		log.Error("failed to insert post",
			slog.String("error", err.Error()),
			slog.String("br_cd", fields.Category))
		return 0, store.NewExecutionError(postEntity, "insert", MapError(err))
	}

	log.Info("post inserted",
		slog.Int64("br_seq", seq),
		slog.String("br_cd", fields.Category))
	return seq, nil
}

// Update implements store.PostStore.Update.
func (s *PostStore) Update(ctx context.Context, seq int64, update domain.PostUpdate) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tboard
		SET br_title = $1, br_content = $2, br_file = $3
		WHERE br_seq = $4
	`
	result, err := s.db.ExecContext(ctx, query, update.Title, update.Content, update.File, seq)
	if err != nil {
		log.Error("failed to update post",
			slog.String("error", err.Error()),
			slog.Int64("br_seq", seq))
		return 0, store.NewExecutionError(postEntity, "update", MapError(err))
	}

	n, err := rowsAffected(result)
	if err != nil {
		return 0, store.NewExecutionError(postEntity, "update", err)
	}

	log.Debug("post updated",
		slog.Int64("br_seq", seq),
		slog.Int64("rows_affected", n))
	return n, nil
}

// Delete implements store.PostStore.Delete.
func (s *PostStore) Delete(ctx context.Context, seq int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tboard WHERE br_seq = $1`, seq)
	if err != nil {
		log.Error("failed to delete post",
			slog.String("error", err.Error()),
			slog.Int64("br_seq", seq))
		return 0, store.NewExecutionError(postEntity, "delete", MapError(err))
	}

	n, err := rowsAffected(result)
	if err != nil {
		return 0, store.NewExecutionError(postEntity, "delete", err)
	}

	log.Debug("post deleted",
		slog.Int64("br_seq", seq),
		slog.Int64("rows_affected", n))
	return n, nil
}

// GetBySeq implements store.PostStore.GetBySeq.
func (s *PostStore) GetBySeq(ctx context.Context, seq int64) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving post", slog.Int64("br_seq", seq))

	rows, err := s.db.QueryContext(ctx,
		`SELECT br_seq, br_cd, br_title, br_content, br_file, br_reg_id, br_reg_dt
		FROM tboard WHERE br_seq = $1`, seq)
	if err != nil {
		log.Error("failed to get post",
			slog.String("error", err.Error()),
			slog.Int64("br_seq", seq))
		return nil, store.NewExecutionError(postEntity, "get", MapError(err))
	}
	raw, err := scanRows(rows, postEntity)
	if err != nil {
		return nil, store.NewExecutionError(postEntity, "get", MapError(err))
	}
	if len(raw) == 0 {
		log.Debug("post not found", slog.Int64("br_seq", seq))
		return nil, store.ErrPostNotFound
	}

	post, err := mapPost(raw[0])
	if err != nil {
		log.Error("post row did not map",
			slog.String("error", err.Error()),
			slog.Int64("br_seq", seq))
		return nil, err
	}
	return &post, nil
}

// CountByCategory implements store.PostStore.CountByCategory.
func (s *PostStore) CountByCategory(ctx context.Context, category string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tboard WHERE br_cd = $1`, category).Scan(&n)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count posts",
			slog.String("error", err.Error()),
			slog.String("br_cd", category))
		return 0, store.NewExecutionError(postEntity, "count", MapError(err))
	}
	return n, nil
}

// ListByCategory implements store.PostStore.ListByCategory.
func (s *PostStore) ListByCategory(
	ctx context.Context,
	category string,
	keyword string,
	page domain.PageRequest,
) (domain.Page[domain.Post], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := listPage(ctx, s.db, s.dialect, postList, listFilter{
		equalColumn: "br_cd",
		equalValue:  category,
		keyword:     keyword,
	}, &page)
	if err != nil {
		log.Error("failed to list posts",
			slog.String("error", err.Error()),
			slog.String("br_cd", category),
			slog.Int("page", page.Page),
			slog.Int("size", page.Size))
		return domain.Page[domain.Post]{}, err
	}

	log.Debug("posts listed",
		slog.String("br_cd", category),
		slog.Bool("filtered", keyword != ""),
		slog.Int64("total", result.TotalCount))
	return result, nil
}

// WithTx implements store.PostStore.WithTx.
func (s *PostStore) WithTx(tx *sql.Tx) store.PostStore {
	return &PostStore{
		db:      tx,
		dialect: s.dialect,
		logger:  s.logger,
	}
}
