// Package statuslog records every status change applied to an order.
//
// The log is append-only. Each row keeps the previous and the new status,
// the request that caused the change and the OpenTelemetry trace active at
// the time, so a dashboard action can be followed to its trace.
package statuslog

import "time"

// Entry is a single row in the order_status_log table.
type Entry struct {
	// OrderNumber is the natural key of the order that changed.
	OrderNumber string

	FromStatus string
	ToStatus   string

	// RequestID is the X-Request-Id of the admin call, empty outside HTTP.
	RequestID string

	// TraceID and SpanID come from the span active when the entry was built.
	// Both are empty when tracing is disabled.
	TraceID string
	SpanID  string

	ChangedAt time.Time
}
