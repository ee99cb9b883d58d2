package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/agrovida/pagination"
)

// Envelope is the JSON shape of every API response.
type Envelope struct {
	Success    bool                 `json:"success"`
	Data       any                  `json:"data,omitempty"`
	Message    string               `json:"message,omitempty"`
	Error      string               `json:"error,omitempty"`
	Code       string               `json:"code,omitempty"`
	Fields     map[string]string    `json:"fields,omitempty"`
	Count      *int                 `json:"count,omitempty"`
	Pagination *pagination.Response `json:"pagination,omitempty"`

	TraceID string         `json:"trace_id,omitempty"`
	Trace   string         `json:"trace,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// Enveloper is implemented by use case outputs that shape their own success envelope.
type Enveloper interface {
	Envelope() Envelope
}

// OK wraps data into a success envelope.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// WithCount sets the item count of a list response.
func (e Envelope) WithCount(n int) Envelope {
	e.Count = &n
	return e
}

// WithMessage sets the human readable message.
func (e Envelope) WithMessage(msg string) Envelope {
	e.Message = msg
	return e
}

// WithPagination attaches page metadata.
func (e Envelope) WithPagination(p pagination.Response) Envelope {
	e.Pagination = &p
	return e
}

// WriteEnvelope writes env as JSON with the given status.
func WriteEnvelope(c *fiber.Ctx, status int, env Envelope) error {
	return c.Status(status).JSON(env)
}
