package middleware

import (
	"runtime"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/agrovida/http/server"
	"github.com/rise-and-shine/agrovida/observability/logger"
)

const stackTraceSize = 4096

// NewRecoveryMW converts panics into internal errors so the client still gets an envelope.
func NewRecoveryMW(log logger.Logger) server.Middleware {
	return server.Middleware{
		Priority: 1000,
		Handler: func(c *fiber.Ctx) (err error) {
			defer func() {
				if r := recover(); r != nil {
					stackTrace := make([]byte, stackTraceSize)
					stackTrace = stackTrace[:runtime.Stack(stackTrace, false)]

					log.Named("http.recovery").
						WithContext(c.UserContext()).
						With("stack_trace", string(stackTrace), "panic_message", r).
						Error("recovered from panic")

					err = errx.New("panic recovered", errx.WithDetails(errx.D{
						"panic_message": r,
					}))
				}
			}()

			return c.Next()
		},
	}
}
