package server

import (
	"net"
	"time"

	"github.com/spf13/cast"
)

// Config defines configuration options for the HTTP server.
type Config struct {
	// HideErrorDetails hides internal error causes, traces and details from responses.
	// Leave it false only in development-like environments.
	HideErrorDetails bool `yaml:"hide_error_details"`

	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required"`

	ReadTimeout  time.Duration `yaml:"read_timeout"  validate:"required" default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"required" default:"5s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"  validate:"required" default:"120s"`

	// HandleTimeout bounds the context of a single request.
	HandleTimeout time.Duration `yaml:"request_timeout" validate:"required" default:"10s"`

	// BodyLimit is the maximum request body size in bytes.
	BodyLimit int `yaml:"body_limit" validate:"required" default:"4194304"`

	// AllowOrigins is passed to the CORS middleware.
	AllowOrigins string `yaml:"allow_origins" default:"*"`
}

// Address returns the server's listen address in the form "host:port".
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, cast.ToString(c.Port))
}
