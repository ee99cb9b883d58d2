package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/agrovida/http/server"
	"github.com/rise-and-shine/agrovida/observability/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// NewTracingMW starts a server span for every request.
// The span is named after the matched route once routing is done.
func NewTracingMW() server.Middleware {
	return server.Middleware{
		Priority: 900,
		Handler: func(c *fiber.Ctx) error {
			ctx, span := tracing.Tracer().Start(
				c.UserContext(),
				fmt.Sprintf("%s %s", c.Method(), c.Path()),
				trace.WithSpanKind(trace.SpanKindServer),
			)
			defer span.End()

			c.SetUserContext(ctx)

			err := c.Next()

			route := c.Route().Path
			if route != "" && route != "/" {
				span.SetName(fmt.Sprintf("%s %s", c.Method(), route))
			}

			span.SetAttributes(
				attribute.String("http.request.method", c.Method()),
				attribute.String("http.route", route),
				attribute.String("url.full", c.OriginalURL()),
				attribute.Int("http.response.status_code", c.Response().StatusCode()),
			)

			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}

			return err
		},
	}
}
