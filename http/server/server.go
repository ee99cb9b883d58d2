// Package server provides a configurable HTTP server implementation based on the Fiber framework.
package server

import (
	"context"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
)

// HTTPServer provides an HTTP server with prioritized middleware.
type HTTPServer struct {
	cfg      Config
	router   *fiber.App
	renderer *ErrorRenderer
}

// NewHTTPServer creates a new HTTPServer. Middlewares are applied in
// descending priority; renderer shapes every error response.
func NewHTTPServer(cfg Config, renderer *ErrorRenderer, middlewares []Middleware) *HTTPServer {
	router := fiber.New(fiber.Config{
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           cfg.IdleTimeout,
		ErrorHandler:          fiberErrorHandler(renderer),
		DisableStartupMessage: true,
		Immutable:             true,
		BodyLimit:             cfg.BodyLimit,
	})

	for _, h := range ordered(middlewares) {
		router.Use(h)
	}

	return &HTTPServer{
		cfg:      cfg,
		router:   router,
		renderer: renderer,
	}
}

// RegisterRouter registers routes with the server using the provided register function.
func (s *HTTPServer) RegisterRouter(registerFunc func(r fiber.Router)) {
	registerFunc(s.router)
}

// App exposes the underlying fiber application, mostly for tests.
func (s *HTTPServer) App() *fiber.App {
	return s.router
}

// Renderer returns the error renderer used by the server.
func (s *HTTPServer) Renderer() *ErrorRenderer {
	return s.renderer
}

// Start begins listening for incoming HTTP requests on the configured address.
func (s *HTTPServer) Start() error {
	return errx.Wrap(s.router.Listen(s.cfg.Address()))
}

// Stop waits for in-flight requests to finish or ctx to expire.
func (s *HTTPServer) Stop(ctx context.Context) error {
	return errx.Wrap(s.router.ShutdownWithContext(ctx))
}
