package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/agrovida/http/server"
)

// CodeRequestTimeout marks handler errors caused by the request deadline.
const CodeRequestTimeout = "REQUEST_TIMEOUT"

// NewTimeoutMW gives every request a context deadline of d. Store calls
// abort once it passes and their error is tagged with CodeRequestTimeout.
func NewTimeoutMW(d time.Duration) server.Middleware {
	return server.Middleware{
		Priority: 300,
		Handler: func(c *fiber.Ctx) error {
			ctx, cancel := context.WithTimeout(c.UserContext(), d)
			defer cancel()
			c.SetUserContext(ctx)

			err := c.Next()
			if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return errx.Wrap(err, errx.WithCode(CodeRequestTimeout), errx.WithDetails(errx.D{"timeout": d.String()}))
			}
			return err
		},
	}
}
