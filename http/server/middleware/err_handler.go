package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/agrovida/http/server"
)

// NewErrorHandlerMW renders errors returned by handlers as failure envelopes.
// The error keeps flowing up so the logger and tracing middlewares can see it.
func NewErrorHandlerMW(renderer *server.ErrorRenderer) server.Middleware {
	return server.Middleware{
		Priority: 400,
		Handler: func(c *fiber.Ctx) error {
			err := c.Next()
			if err == nil {
				return nil
			}

			if c.Response() != nil && c.Response().StatusCode() >= fiber.StatusBadRequest {
				return err
			}

			return renderer.Write(c, err)
		},
	}
}
