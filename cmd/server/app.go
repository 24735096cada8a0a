package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/memoboard-api/internal/config"
	"github.com/phrazzld/memoboard-api/internal/domain"
	"github.com/phrazzld/memoboard-api/internal/platform/sqldb"
	"github.com/phrazzld/memoboard-api/internal/service"
	"github.com/phrazzld/memoboard-api/internal/store"
)

// application holds the shared dependencies of the server so they can be
// wired once and released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	postStore store.PostStore
	memoStore store.MemoStore

	boardService service.BoardService
	memoService  service.MemoService
}

// newApplication wires stores and services on top of an open database.
// The application owns db from here on and closes it in cleanup.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	dialect sqldb.Dialect,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.postStore = sqldb.NewPostStore(db, dialect, logger)
	app.memoStore = sqldb.NewMemoStore(db, dialect, logger)

	catalog, err := domain.DefaultCategoryCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load category catalog: %w", err)
	}

	app.boardService, err = service.NewBoardService(db, app.postStore, catalog, cfg.API.DefaultAuthor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create board service: %w", err)
	}

	app.memoService, err = service.NewMemoService(db, app.memoStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create memo service: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
