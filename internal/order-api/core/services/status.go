package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/domain"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/ports"
	"github.com/jcmexdev/fitforge-orders/internal/pkg/interceptors/constants"
	"github.com/jcmexdev/fitforge-orders/internal/statuslog"
)

// StatusService moves orders through their status values.
type StatusService struct {
	repo        ports.OrderRepository
	transitions domain.Transitions
	log         statuslog.Repository // nil-safe: history is not recorded if nil
	now         func() time.Time
}

// NewStatusService builds the service. A nil transitions table allows every
// change; log may be nil.
func NewStatusService(repo ports.OrderRepository, transitions domain.Transitions, log statuslog.Repository) *StatusService {
	if repo == nil {
		panic("services.NewStatusService: nil repository")
	}
	if transitions == nil {
		transitions = domain.PermissiveTransitions
	}
	return &StatusService{
		repo:        repo,
		transitions: transitions,
		log:         log,
		now:         time.Now,
	}
}

// UpdateStatus sets the status of orderNumber. Concurrent updates are last
// write wins.
func (s *StatusService) UpdateStatus(ctx context.Context, orderNumber, status string) (*domain.Order, error) {
	ctx, span := tracer.Start(ctx, "orders.UpdateStatus")
	defer span.End()
	span.SetAttributes(
		attribute.String("order.number", orderNumber),
		attribute.String("order.status", status),
	)

	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" || status == "" {
		return nil, domain.Invalid("Order number and status are required")
	}
	target, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.Get(ctx, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("load order %s: %w", orderNumber, err)
	}
	if err := s.transitions.Check(current.Status, target); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, orderNumber, target, s.now().UTC())
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("update order %s: %w", orderNumber, err)
	}

	s.record(ctx, orderNumber, current.Status, target)
	return updated, nil
}

// History lists the recorded status changes of orderNumber, oldest first.
func (s *StatusService) History(ctx context.Context, orderNumber string) ([]statuslog.Entry, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, domain.Invalid("Order number is required")
	}
	if s.log == nil {
		return []statuslog.Entry{}, nil
	}
	entries, err := s.log.List(ctx, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("list status history %s: %w", orderNumber, err)
	}
	return entries, nil
}

func (s *StatusService) record(ctx context.Context, orderNumber string, from, to domain.Status) {
	if s.log == nil {
		return
	}
	requestID, _ := ctx.Value(constants.ContextKeyRequestID).(string)
	entry := statuslog.NewEntry(ctx, orderNumber, string(from), string(to), requestID)
	if err := s.log.Save(ctx, entry); err != nil {
		slog.WarnContext(ctx, "failed to record status change", "order_number", orderNumber, "error", err)
	}
}
