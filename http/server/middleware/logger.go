package middleware

import (
	"time"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/agrovida/http/server"
	"github.com/rise-and-shine/agrovida/observability/logger"
)

// NewLoggerMW logs every request after the error handler has written the response.
// 5xx are logged at error level, 4xx at warn level and the rest at info level.
func NewLoggerMW(log logger.Logger) server.Middleware {
	return server.Middleware{
		Priority: 500,
		Handler: func(c *fiber.Ctx) error {
			start := time.Now()

			err := c.Next()

			status := c.Response().StatusCode()

			entry := log.Named("http").
				WithContext(c.UserContext()).
				With(
					"http_status_code", status,
					"http_method", c.Method(),
					"http_path", c.Path(),
					"http_route", c.Route().Path,
					"duration", time.Since(start),
					"query_params", c.Queries(),
					"request_size", len(c.Body()),
				)

			if err != nil {
				e := errx.AsErrorX(err)
				entry = entry.With("error", map[string]any{
					"code":    e.Code(),
					"message": e.Error(),
					"type":    e.Type().String(),
					"trace":   e.Trace(),
					"fields":  e.Fields(),
					"details": e.Details(),
				})
			}

			switch {
			case status >= fiber.StatusInternalServerError:
				entry.Error("request failed")
			case status >= fiber.StatusBadRequest:
				entry.Warn("request rejected")
			default:
				entry.Info("request processed")
			}

			return err
		},
	}
}
