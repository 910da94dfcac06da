package statuslog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// TraceInfo holds the OTel identifiers extracted from a context.
type TraceInfo struct {
	TraceID string
	SpanID  string
}

// ExtractTraceInfo reads the active span from ctx. Both fields are empty
// when ctx carries no valid span.
func ExtractTraceInfo(ctx context.Context) TraceInfo {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return TraceInfo{}
	}
	return TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// NewEntry builds an entry stamped with the trace in ctx and the current
// UTC time.
//
//	entry := statuslog.NewEntry(ctx, "FF-250101-1234", "pending", "shipped", requestID)
//	_ = repo.Save(ctx, entry)
func NewEntry(ctx context.Context, orderNumber, from, to, requestID string) *Entry {
	ti := ExtractTraceInfo(ctx)
	return &Entry{
		OrderNumber: orderNumber,
		FromStatus:  from,
		ToStatus:    to,
		RequestID:   requestID,
		TraceID:     ti.TraceID,
		SpanID:      ti.SpanID,
		ChangedAt:   time.Now().UTC(),
	}
}
