// Package httpapi assembles the agrovida HTTP server.
package httpapi

import (
	"github.com/rise-and-shine/agrovida/http/server"
	"github.com/rise-and-shine/agrovida/http/server/middleware"
	"github.com/rise-and-shine/agrovida/internal/variety/usecase"
	"github.com/rise-and-shine/agrovida/observability/logger"
)

// NewServer builds the server with the default middleware stack and every route.
func NewServer(cfg server.Config, store usecase.Store, log logger.Logger) *server.HTTPServer {
	renderer := NewErrorRenderer(cfg.HideErrorDetails)
	uc := usecase.New(store, renderer)

	srv := server.NewHTTPServer(cfg, renderer, middleware.Defaults(cfg, renderer, log))
	srv.RegisterRouter(Routes(uc, renderer))

	return srv
}
