package statuslog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
)

func TestNewEntry_WithoutSpan(t *testing.T) {
	e := NewEntry(context.Background(), "FF-250101-1234", "pending", "shipped", "req-7")

	assert.Equal(t, "FF-250101-1234", e.OrderNumber)
	assert.Equal(t, "pending", e.FromStatus)
	assert.Equal(t, "shipped", e.ToStatus)
	assert.Equal(t, "req-7", e.RequestID)
	assert.Empty(t, e.TraceID)
	assert.Empty(t, e.SpanID)
	assert.False(t, e.ChangedAt.IsZero())
}

func TestExtractTraceInfo_WithSpanContext(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	ti := ExtractTraceInfo(ctx)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", ti.TraceID)
	assert.Equal(t, "00f067aa0ba902b7", ti.SpanID)
}
