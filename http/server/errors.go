package server

import (
	"errors"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/agrovida/meta"
)

const (
	// codeRouterError is used when the router encounters an error.
	codeRouterError = "ROUTER_ERROR"

	genericInternalMessage = "Internal server error"
)

// ErrorRenderer turns errors into failure envelopes.
//
// The HTTP status comes from the errx type unless the code has an explicit
// override. The message comes from the per-code catalog, falling back to the
// error text. Internal causes are replaced by a generic text when details are hidden.
type ErrorRenderer struct {
	hideDetails bool
	messages    map[string]string
	statuses    map[string]int
}

// ErrorRendererOption configures an ErrorRenderer.
type ErrorRendererOption func(*ErrorRenderer)

// WithMessages registers human readable messages per error code.
func WithMessages(messages map[string]string) ErrorRendererOption {
	return func(r *ErrorRenderer) {
		for code, msg := range messages {
			r.messages[code] = msg
		}
	}
}

// WithStatuses overrides the HTTP status of specific error codes.
func WithStatuses(statuses map[string]int) ErrorRendererOption {
	return func(r *ErrorRenderer) {
		for code, status := range statuses {
			r.statuses[code] = status
		}
	}
}

// NewErrorRenderer creates an ErrorRenderer.
func NewErrorRenderer(hideDetails bool, opts ...ErrorRendererOption) *ErrorRenderer {
	r := &ErrorRenderer{
		hideDetails: hideDetails,
		messages:    make(map[string]string),
		statuses:    make(map[string]int),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Write writes the failure envelope for err and returns err as an errx.ErrorX.
func (r *ErrorRenderer) Write(c *fiber.Ctx, err error) error {
	e := mapAnyErrorToErrorX(err)
	status := r.Status(e)

	_ = c.Status(status).JSON(r.Envelope(c, e, status))

	return e
}

// Status resolves the HTTP status for e.
func (r *ErrorRenderer) Status(e errx.ErrorX) int {
	if status, ok := r.statuses[e.Code()]; ok {
		return status
	}
	return mapErrorTypeToHTTPStatusCode(e.Type())
}

// Envelope builds the failure envelope for e.
func (r *ErrorRenderer) Envelope(c *fiber.Ctx, e errx.ErrorX, status int) Envelope {
	env := Envelope{
		Success: false,
		Code:    e.Code(),
		Error:   e.Error(),
		Message: r.messages[e.Code()],
		Fields:  e.Fields(),
		TraceID: meta.Find(c.UserContext(), meta.TraceID),
	}

	if status >= fiber.StatusInternalServerError && r.hideDetails {
		env.Error = genericInternalMessage
	}

	if env.Message == "" {
		env.Message = env.Error
	}

	if !r.hideDetails {
		env.Trace = e.Trace()
		env.Details = e.Details()
	}

	return env
}

// Failure is the client-visible part of a failure envelope, for errors
// reported inside an otherwise successful response.
type Failure struct {
	Code   string
	Error  string
	Fields map[string]string
}

// Failure applies the envelope rules to err. With details hidden, an internal
// cause becomes its catalog message or the generic internal message.
func (r *ErrorRenderer) Failure(err error) Failure {
	e := mapAnyErrorToErrorX(err)
	f := Failure{Code: e.Code(), Error: e.Error(), Fields: e.Fields()}

	if r.hideDetails && r.Status(e) >= fiber.StatusInternalServerError {
		f.Error = genericInternalMessage
		if msg, ok := r.messages[e.Code()]; ok {
			f.Error = msg
		}
	}

	return f
}

// fiberErrorHandler handles errors that escape the middleware chain,
// such as routing failures and oversized bodies.
// If the response status code is already an error (>= 400), it is left alone.
func fiberErrorHandler(r *ErrorRenderer) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if resp := c.Response(); resp != nil && resp.StatusCode() >= fiber.StatusBadRequest {
			return nil
		}

		_ = r.Write(c, err)
		return nil
	}
}

// mapErrorTypeToHTTPStatusCode converts an errx.Type to the appropriate HTTP status code.
func mapErrorTypeToHTTPStatusCode(t errx.Type) int {
	switch t {
	case errx.T_Authentication:
		return fiber.StatusUnauthorized
	case errx.T_Forbidden:
		return fiber.StatusForbidden
	case errx.T_NotFound:
		return fiber.StatusNotFound
	case errx.T_Validation:
		return fiber.StatusBadRequest
	case errx.T_Conflict:
		return fiber.StatusConflict
	case errx.T_Throttling:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// mapAnyErrorToErrorX converts any error to an errx.ErrorX.
// Fiber errors are mapped to the matching errx type.
func mapAnyErrorToErrorX(err error) errx.ErrorX {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		var t errx.Type

		switch {
		case fiberErr.Code == fiber.StatusNotFound:
			t = errx.T_NotFound
		case fiberErr.Code == fiber.StatusConflict:
			t = errx.T_Conflict
		case fiberErr.Code == fiber.StatusTooManyRequests:
			t = errx.T_Throttling
		case fiberErr.Code >= 400 && fiberErr.Code < 500:
			t = errx.T_Validation
		default:
			t = errx.T_Internal
		}

		err = errx.New(
			fiberErr.Message,
			errx.WithCode(codeRouterError),
			errx.WithType(t),
			errx.WithDetails(errx.D{
				"fiber_code": fiberErr.Code,
			}),
		)
	}

	return errx.AsErrorX(err)
}
