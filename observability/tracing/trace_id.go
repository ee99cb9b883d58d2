package tracing

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// manualPrefix marks ids minted locally when no span is recording,
// e.g. with tracing disabled in the test and local configs.
const manualPrefix = "man-"

// GetStartingTraceID returns the trace id of the span in ctx, or a fresh
// "man-<uuid>" id so logs of one request still correlate.
func GetStartingTraceID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	return manualPrefix + uuid.NewString()
}
