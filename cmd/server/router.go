package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/memoboard-api/internal/api"
	apiMiddleware "github.com/phrazzld/memoboard-api/internal/api/middleware"
)

// setupRouter creates the router with middleware and every route mounted.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if secs := app.config.Server.RequestTimeoutSeconds; secs > 0 {
		r.Use(middleware.Timeout(time.Duration(secs) * time.Second))
	}
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	boardHandler := api.NewBoardHandler(app.boardService, app.config.API, app.logger)
	memoHandler := api.NewMemoHandler(app.memoService, app.config.API, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/board", boardHandler.Routes)
		r.Route("/memos", memoHandler.Routes)
	})

	r.Method(http.MethodGet, "/health", api.NewHealthHandler(app.db))

	return r
}
