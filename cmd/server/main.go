// Package main implements the entry point for the memoboard API server,
// which serves category boards of posts and a flat list of memos.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/phrazzld/memoboard-api/internal/config"
	"github.com/phrazzld/memoboard-api/internal/platform/logger"
	"github.com/phrazzld/memoboard-api/internal/platform/sqldb"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("memoboard-api: %v", err)
	}
}

// run loads configuration, connects to the database and serves until ctx
// is canceled.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"db_driver", cfg.Database.Driver)

	db, dialect, err := sqldb.Open(ctx, cfg.Database, l)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, l, db, dialect)
	if err != nil {
		if cerr := db.Close(); cerr != nil {
			slog.Error("error closing database connection", "error", cerr)
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
