// Package logger provides a structured logging interface for applications.
//
// It wraps zap's SugaredLogger and adds helpers for errx errors and
// request metadata carried in the context.
package logger

import (
	"context"
	"errors"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/agrovida/meta"
	"go.uber.org/zap"
)

// Logger defines the standard logging interface used across the service.
type Logger interface {
	Debug(msg any)
	Info(msg any)
	Warn(msg any)
	Error(msg any)
	Fatal(msg any)

	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)

	// Warnx logs errx.ErrorX instances at warn level with code, type, trace, fields and details.
	Warnx(err error)
	// Errorx logs errx.ErrorX instances at error level with code, type, trace, fields and details.
	Errorx(err error)
	// Fatalx logs errx.ErrorX instances at fatal level and then calls os.Exit(1).
	Fatalx(err error)

	// With creates a child logger that includes the given key-value pairs in every entry.
	With(keysAndValues ...any) Logger
	// WithContext creates a child logger enriched with the metadata found in ctx.
	WithContext(ctx context.Context) Logger
	// Named adds a sub-scope to the logger's name.
	Named(name string) Logger

	// Sync flushes any buffered log entries.
	Sync() error
}

type logger struct {
	*zap.SugaredLogger
}

func newLogger(cfg Config) (Logger, error) {
	if cfg.Disable {
		return &logger{zap.NewNop().Sugar()}, nil
	}

	zapConfig, err := cfg.getZapConfig()
	if err != nil {
		return nil, errx.Wrap(err)
	}

	zl, err := zapConfig.Build()
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return &logger{zl.Sugar()}, nil
}

// New creates a new Logger instance with the provided configuration.
func New(cfg Config) (Logger, error) {
	return newLogger(cfg)
}

// NewNop returns a logger that discards everything.
func NewNop() Logger {
	return &logger{zap.NewNop().Sugar()}
}

func (l *logger) withErrorX(err error) (*zap.SugaredLogger, bool) {
	var e errx.ErrorX
	if !errors.As(err, &e) {
		return l.SugaredLogger, false
	}
	return l.SugaredLogger.With(
		"error_code", e.Code(),
		"error_type", e.Type().String(),
		"error_trace", e.Trace(),
		"error_fields", e.Fields(),
		"error_details", e.Details(),
	), true
}

func (l *logger) Warnx(err error) {
	sl, _ := l.withErrorX(err)
	sl.Warn(err.Error())
}

func (l *logger) Errorx(err error) {
	sl, _ := l.withErrorX(err)
	sl.Error(err.Error())
}

func (l *logger) Fatalx(err error) {
	sl, _ := l.withErrorX(err)
	sl.Fatal(err.Error())
}

func (l *logger) With(keysAndValues ...any) Logger {
	return &logger{l.SugaredLogger.With(keysAndValues...)}
}

func (l *logger) WithContext(ctx context.Context) Logger {
	if ctx == nil {
		return l
	}

	var fields []any
	for k, v := range meta.ExtractMetaFromContext(ctx) {
		// string keys, zap rejects non-string keys
		fields = append(fields, string(k), v)
	}

	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

func (l *logger) Named(name string) Logger {
	return &logger{l.SugaredLogger.Named(name)}
}

func (l *logger) Debug(msg any) { l.SugaredLogger.Debug(msg) }

func (l *logger) Info(msg any) { l.SugaredLogger.Info(msg) }

func (l *logger) Warn(msg any) { l.SugaredLogger.Warn(msg) }

func (l *logger) Error(msg any) { l.SugaredLogger.Error(msg) }

func (l *logger) Fatal(msg any) { l.SugaredLogger.Fatal(msg) }
