// Package notify sends the order emails through a primary and a fallback
// sender and reports what happened to each message.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/domain"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/ports"
)

var _ ports.Notifier = (*Notifier)(nil)

type Config struct {
	From          string // sender address for the primary channel
	FallbackFrom  string // sender address for the fallback; From when empty
	BusinessEmail string // shop inbox receiving new-order emails
}

type Notifier struct {
	primary  ports.Sender
	fallback ports.Sender
	cfg      Config
	logger   *slog.Logger
}

// NewNotifier panics if either sender is nil.
func NewNotifier(primary, fallback ports.Sender, cfg Config, logger *slog.Logger) *Notifier {
	if primary == nil || fallback == nil {
		panic("notify.NewNotifier: nil sender")
	}
	if cfg.FallbackFrom == "" {
		cfg.FallbackFrom = cfg.From
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{primary: primary, fallback: fallback, cfg: cfg, logger: logger}
}

func (n *Notifier) NotifyOrder(ctx context.Context, order domain.Order) domain.NotificationReport {
	return n.notify(ctx, order, false)
}

func (n *Notifier) NotifyOrderFallback(ctx context.Context, order domain.Order) domain.NotificationReport {
	return n.notify(ctx, order, true)
}

func (n *Notifier) SendTest(ctx context.Context, to string) error {
	if !strings.Contains(to, "@") {
		return domain.Invalid("Invalid test email address")
	}
	msg := TestMessage(n.cfg.From, to)
	if err := n.primary.Send(ctx, msg); err != nil {
		n.logger.ErrorContext(ctx, "test email failed",
			slog.String("sender", n.primary.Name()),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("send test email via %s: %w", n.primary.Name(), err)
	}
	return nil
}

// notify sends the business and customer messages concurrently. Neither
// failure cancels the other.
func (n *Notifier) notify(ctx context.Context, order domain.Order, fallbackOnly bool) domain.NotificationReport {
	report := domain.NotificationReport{
		OrderNumber: order.OrderNumber,
		Business:    domain.OutcomeFailed,
		Customer:    domain.OutcomeFailed,
	}

	var g errgroup.Group
	g.Go(func() error {
		msg, err := BusinessMessage(order, n.cfg.From, n.cfg.BusinessEmail)
		if err != nil {
			n.logFailure(ctx, order, "business", "compose", err)
			return nil
		}
		report.Business = n.deliver(ctx, order, "business", msg, fallbackOnly)
		return nil
	})
	g.Go(func() error {
		msg, err := CustomerMessage(order, n.cfg.From, n.cfg.BusinessEmail)
		if err != nil {
			n.logFailure(ctx, order, "customer", "compose", err)
			return nil
		}
		report.Customer = n.deliver(ctx, order, "customer", msg, fallbackOnly)
		return nil
	})
	_ = g.Wait()

	n.logger.InfoContext(ctx, "order notification finished",
		slog.String("order_number", order.OrderNumber),
		slog.String("business", string(report.Business)),
		slog.String("customer", string(report.Customer)),
	)
	return report
}

func (n *Notifier) deliver(ctx context.Context, order domain.Order, audience string, msg ports.Message, fallbackOnly bool) domain.Outcome {
	if !fallbackOnly {
		err := n.primary.Send(ctx, msg)
		if err == nil {
			return domain.OutcomeDelivered
		}
		n.logFailure(ctx, order, audience, n.primary.Name(), err)
	}

	msg.From = n.cfg.FallbackFrom
	if err := n.fallback.Send(ctx, msg); err != nil {
		n.logFailure(ctx, order, audience, n.fallback.Name(), err)
		return domain.OutcomeFailed
	}
	return domain.OutcomeDeliveredFallback
}

func (n *Notifier) logFailure(ctx context.Context, order domain.Order, audience, stage string, err error) {
	n.logger.ErrorContext(ctx, "order email failed",
		slog.String("order_number", order.OrderNumber),
		slog.String("audience", audience),
		slog.String("stage", stage),
		slog.String("error", err.Error()),
	)
}
