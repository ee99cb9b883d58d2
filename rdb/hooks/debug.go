// Package hooks contains bun query hooks shared by every rdb driver.
package hooks

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/rise-and-shine/agrovida/observability/logger"
	"github.com/uptrace/bun"
)

var _ bun.QueryHook = (*DebugHook)(nil)

// DebugHook logs executed queries with their duration.
// Failures are logged at error level, missing rows and slow queries at warn level.
type DebugHook struct {
	enabled            bool
	verbose            bool
	slowQueryThreshold time.Duration
	log                logger.Logger
}

// DebugHookOption configures a DebugHook.
type DebugHookOption func(*DebugHook)

// NewDebugHook creates an enabled, verbose hook with a 100ms slow query threshold.
func NewDebugHook(opts ...DebugHookOption) *DebugHook {
	hook := &DebugHook{
		enabled:            true,
		verbose:            true,
		slowQueryThreshold: 100 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(hook)
	}

	return hook
}

func WithEnabled(enabled bool) DebugHookOption {
	return func(h *DebugHook) {
		h.enabled = enabled
	}
}

// WithVerbose logs every query at debug level, not only failures and slow ones.
func WithVerbose(verbose bool) DebugHookOption {
	return func(h *DebugHook) {
		h.verbose = verbose
	}
}

// WithSlowQueryThreshold sets the warn threshold. Zero disables slow query detection.
func WithSlowQueryThreshold(threshold time.Duration) DebugHookOption {
	return func(h *DebugHook) {
		h.slowQueryThreshold = threshold
	}
}

// WithLogger replaces the global logger.
func WithLogger(l logger.Logger) DebugHookOption {
	return func(h *DebugHook) {
		h.log = l
	}
}

func (h *DebugHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *DebugHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	if !h.enabled {
		return
	}

	duration := time.Since(event.StartTime)

	isNoRows := errors.Is(event.Err, sql.ErrNoRows)
	hasError := event.Err != nil && !isNoRows && !errors.Is(event.Err, sql.ErrTxDone)
	isSlow := h.slowQueryThreshold > 0 && duration >= h.slowQueryThreshold

	if !h.verbose && !hasError && !isNoRows && !isSlow {
		return
	}

	base := h.log
	if base == nil {
		base = logger.Named("rdb")
	}

	entry := base.
		WithContext(ctx).
		With("query", strings.ReplaceAll(event.Query, `"`, ""), "duration", duration.Round(time.Microsecond))

	msg := "[rdb] " + event.Operation()

	switch {
	case hasError:
		entry.With("error", event.Err.Error()).Error(msg)
	case isNoRows:
		entry.Warn(msg + ": no rows")
	case isSlow:
		entry.Warn(msg + ": slow query")
	default:
		entry.Debug(msg)
	}
}
