// Package middleware provides Fiber middlewares with a fixed priority order.
//
//   - Recovery (1000): catches panics in the chain
//   - Tracing (900): starts a server span per request
//   - CORS (850): answers preflight requests
//   - MetaInject (700): puts request metadata into the context
//   - Logger (500): logs every request with its outcome
//   - ErrorHandler (400): renders errors as failure envelopes
//   - Timeout (300): bounds the handler context and tags deadline errors
//
// Higher priority values run earlier in the request pipeline.
package middleware

import (
	"github.com/rise-and-shine/agrovida/http/server"
	"github.com/rise-and-shine/agrovida/observability/logger"
)

// Defaults returns the full middleware stack for cfg.
func Defaults(cfg server.Config, renderer *server.ErrorRenderer, log logger.Logger) []server.Middleware {
	return []server.Middleware{
		NewRecoveryMW(log),
		NewTracingMW(),
		NewCORSMW(cfg.AllowOrigins),
		NewTimeoutMW(cfg.HandleTimeout),
		NewMetaInjectMW(),
		NewLoggerMW(log),
		NewErrorHandlerMW(renderer),
	}
}
