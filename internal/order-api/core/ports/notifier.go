package ports

import (
	"context"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/domain"
)

// Message is one outgoing email.
type Message struct {
	ID      string
	From    string
	To      []string
	Subject string
	HTML    string
}

// Sender delivers a single message through one channel (an email API, a
// queue, the log).
type Sender interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// Notifier delivers the order emails. It never fails the caller: the outcome
// of each message is reported instead.
type Notifier interface {
	// NotifyOrder tries the primary sender and falls back on failure.
	NotifyOrder(ctx context.Context, order domain.Order) domain.NotificationReport

	// NotifyOrderFallback skips the primary sender entirely.
	NotifyOrderFallback(ctx context.Context, order domain.Order) domain.NotificationReport

	// SendTest sends a fixed test message to "to" through the primary sender.
	SendTest(ctx context.Context, to string) error
}
