package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/agrovida/http/server"
	"github.com/rise-and-shine/agrovida/meta"
	"github.com/rise-and-shine/agrovida/observability/tracing"
)

const headerTraceID = "X-Trace-ID"

// NewMetaInjectMW puts request metadata into the context and echoes
// the trace id in the X-Trace-ID response header.
func NewMetaInjectMW() server.Middleware {
	return server.Middleware{
		Priority: 700,
		Handler: func(c *fiber.Ctx) error {
			ctx := c.UserContext()
			traceID := tracing.GetStartingTraceID(ctx)
			svc := meta.CurrentService()

			ctx = meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{
				meta.TraceID:        traceID,
				meta.IPAddress:      c.IP(),
				meta.UserAgent:      c.Get(fiber.HeaderUserAgent),
				meta.Referer:        c.Get(fiber.HeaderReferer),
				meta.ServiceName:    svc.Name,
				meta.ServiceVersion: svc.Version,
			})
			c.SetUserContext(ctx)
			c.Set(headerTraceID, traceID)

			return c.Next()
		},
	}
}
