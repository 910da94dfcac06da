package httpx

import (
	"time"

	"github.com/jcmexdev/fitforge-orders/internal/statuslog"
)

// Envelope wraps every response body.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Summary any    `json:"summary,omitempty"`
}

type UpdateStatusRequest struct {
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
}

type TestEmailRequest struct {
	TestEmail string `json:"testEmail"`
}

type HistoryEntryResponse struct {
	OrderNumber string    `json:"orderNumber"`
	FromStatus  string    `json:"fromStatus"`
	ToStatus    string    `json:"toStatus"`
	RequestID   string    `json:"requestId,omitempty"`
	TraceID     string    `json:"traceId,omitempty"`
	ChangedAt   time.Time `json:"changedAt"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func mapHistory(entries []statuslog.Entry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = HistoryEntryResponse{
			OrderNumber: e.OrderNumber,
			FromStatus:  e.FromStatus,
			ToStatus:    e.ToStatus,
			RequestID:   e.RequestID,
			TraceID:     e.TraceID,
			ChangedAt:   e.ChangedAt,
		}
	}
	return out
}
