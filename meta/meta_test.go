package meta_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rise-and-shine/agrovida/meta"
)

func TestInjectMetaToContext(t *testing.T) {
	tests := []struct {
		name     string
		data     map[meta.ContextKey]string
		key      meta.ContextKey
		expected any
	}{
		{
			name:     "inject single value",
			data:     map[meta.ContextKey]string{meta.TraceID: "abc-123"},
			key:      meta.TraceID,
			expected: "abc-123",
		},
		{
			name: "inject multiple values",
			data: map[meta.ContextKey]string{
				meta.TraceID:     "trace-1",
				meta.OperationID: "create_variety",
			},
			key:      meta.OperationID,
			expected: "create_variety",
		},
		{
			name:     "skip empty values",
			data:     map[meta.ContextKey]string{meta.IPAddress: ""},
			key:      meta.IPAddress,
			expected: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := meta.InjectMetaToContext(context.Background(), tc.data)
			assert.Equal(t, tc.expected, ctx.Value(tc.key))
		})
	}
}

func TestExtractMetaFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), meta.TraceID, "trace-1")
	ctx = context.WithValue(ctx, meta.UserAgent, "")
	ctx = context.WithValue(ctx, meta.ContextKey("unknown"), "ignored")

	data := meta.ExtractMetaFromContext(ctx)

	assert.Equal(t, map[meta.ContextKey]string{meta.TraceID: "trace-1"}, data)
	assert.Equal(t, "trace-1", meta.Find(ctx, meta.TraceID))
	assert.Empty(t, meta.Find(ctx, meta.Referer))
}

func TestServiceInfo(t *testing.T) {
	meta.SetServiceInfo("agrovida", "1.0.0")
	meta.SetServiceInfo("other", "2.0.0")

	assert.Equal(t, meta.Service{Name: "agrovida", Version: "1.0.0"}, meta.CurrentService())
}
