package service

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/phrazzld/memoboard-api/internal/domain"
	"github.com/phrazzld/memoboard-api/internal/store"
)

// PostInput is a post as submitted for creation.
type PostInput struct {
	Category string
	Title    string
	Content  string
	File     string
	RegID    string
}

// BoardService provides board operations.
type BoardService interface {
	// Category returns the display metadata of a board.
	Category(code string) domain.Category

	// CountPosts counts the posts of a board.
	CountPosts(ctx context.Context, code string) (int64, error)

	// ListPosts returns one page of a board, newest first.
	ListPosts(ctx context.Context, code string, page domain.PageRequest) (domain.Page[domain.Post], error)

	// SearchPosts is ListPosts restricted to posts whose title or content
	// contains keyword. An empty keyword behaves exactly like ListPosts.
	SearchPosts(
		ctx context.Context,
		code string,
		keyword string,
		page domain.PageRequest,
	) (domain.Page[domain.Post], error)

	// GetPost retrieves a post by sequence number.
	GetPost(ctx context.Context, seq int64) (*domain.Post, error)

	// CreatePost inserts a post and returns the assigned sequence number.
	CreatePost(ctx context.Context, input PostInput) (WriteResult, error)

	// UpdatePost overwrites title, content and attachment of a post.
	UpdatePost(ctx context.Context, seq int64, update domain.PostUpdate) (WriteResult, error)

	// DeletePost removes a post.
	DeletePost(ctx context.Context, seq int64) (WriteResult, error)
}

type boardServiceImpl struct {
	db            store.TxBeginner
	posts         store.PostStore
	catalog       *domain.CategoryCatalog
	defaultAuthor string
	logger        *slog.Logger
}

// NewBoardService creates a BoardService. db starts the transactions that
// writes run in; posts must be bound to the same database.
func NewBoardService(
	db store.TxBeginner,
	posts store.PostStore,
	catalog *domain.CategoryCatalog,
	defaultAuthor string,
	logger *slog.Logger,
) (BoardService, error) {
	if db == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if posts == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "posts cannot be nil"}
	}
	if catalog == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "catalog cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &boardServiceImpl{
		db:            db,
		posts:         posts,
		catalog:       catalog,
		defaultAuthor: defaultAuthor,
		logger:        logger.With("component", "board_service"),
	}, nil
}

func requireCategory(code string) error {
	if strings.TrimSpace(code) == "" {
		return domain.NewValidationError("br_cd", "is required", domain.ErrValidation)
	}
	return nil
}

// Category implements BoardService.Category.
func (s *boardServiceImpl) Category(code string) domain.Category {
	return s.catalog.Lookup(code)
}

// CountPosts implements BoardService.CountPosts.
func (s *boardServiceImpl) CountPosts(ctx context.Context, code string) (int64, error) {
	if err := requireCategory(code); err != nil {
		return 0, err
	}
	n, err := s.posts.CountByCategory(ctx, code)
	if err != nil {
		return 0, NewServiceError("count_posts", "failed to count posts", err)
	}
	return n, nil
}

// ListPosts implements BoardService.ListPosts.
func (s *boardServiceImpl) ListPosts(
	ctx context.Context,
	code string,
	page domain.PageRequest,
) (domain.Page[domain.Post], error) {
	return s.SearchPosts(ctx, code, "", page)
}

// SearchPosts implements BoardService.SearchPosts.
func (s *boardServiceImpl) SearchPosts(
	ctx context.Context,
	code string,
	keyword string,
	page domain.PageRequest,
) (domain.Page[domain.Post], error) {
	if err := requireCategory(code); err != nil {
		return domain.Page[domain.Post]{}, err
	}

	result, err := s.posts.ListByCategory(ctx, code, keyword, page)
	if err != nil {
		s.logger.Error("failed to list posts",
			"error", err,
			"br_cd", code,
			"page", page.Page,
			"size", page.Size)
		return domain.Page[domain.Post]{}, NewServiceError("list_posts", "failed to list posts", err)
	}
	return result, nil
}

// GetPost implements BoardService.GetPost.
func (s *boardServiceImpl) GetPost(ctx context.Context, seq int64) (*domain.Post, error) {
	post, err := s.posts.GetBySeq(ctx, seq)
	if err != nil {
		return nil, NewServiceError("get_post", "failed to retrieve post", err)
	}
	return post, nil
}

// CreatePost implements BoardService.CreatePost.
func (s *boardServiceImpl) CreatePost(ctx context.Context, input PostInput) (WriteResult, error) {
	fields, err := domain.NewPostFields(
		input.Category,
		input.Title,
		input.Content,
		input.File,
		input.RegID,
		s.defaultAuthor,
	)
	if err != nil {
		s.logger.Debug("rejected post", "error", err)
		return WriteResult{}, err
	}

	var seq int64
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		seq, err = s.posts.WithTx(tx).Insert(ctx, fields)
		if err != nil {
			return NewServiceError("create_post", "failed to save post", err)
		}
		return nil
	})
	if err != nil {
		return WriteResult{}, NewServiceError("create_post", "transaction failed", err)
	}

	s.logger.Info("post created", "br_seq", seq, "br_cd", fields.Category)
	return WriteResult{ID: seq, Action: ActionInsert, RowsAffected: 1}, nil
}

// UpdatePost implements BoardService.UpdatePost.
func (s *boardServiceImpl) UpdatePost(
	ctx context.Context,
	seq int64,
	update domain.PostUpdate,
) (WriteResult, error) {
	var n int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		n, err = s.posts.WithTx(tx).Update(ctx, seq, update)
		if err != nil {
			return NewServiceError("update_post", "failed to update post", err)
		}
		return nil
	})
	if err != nil {
		return WriteResult{}, NewServiceError("update_post", "transaction failed", err)
	}

	if n == 0 {
		s.logger.Info("update matched no post", "br_seq", seq)
	}
	return WriteResult{ID: seq, Action: ActionUpdate, RowsAffected: n}, nil
}

// DeletePost implements BoardService.DeletePost.
func (s *boardServiceImpl) DeletePost(ctx context.Context, seq int64) (WriteResult, error) {
	var n int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		n, err = s.posts.WithTx(tx).Delete(ctx, seq)
		if err != nil {
			return NewServiceError("delete_post", "failed to delete post", err)
		}
		return nil
	})
	if err != nil {
		return WriteResult{}, NewServiceError("delete_post", "transaction failed", err)
	}

	s.logger.Info("post delete processed", "br_seq", seq, "rows_affected", n)
	return WriteResult{ID: seq, Action: ActionDelete, RowsAffected: n}, nil
}
