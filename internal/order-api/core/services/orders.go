package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/domain"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/ports"
)

// RecentLimit caps the admin order listing.
const RecentLimit = 100

// OrderService validates and persists new orders and answers customer
// lookups.
type OrderService struct {
	repo         ports.OrderRepository
	strictTotals bool
	now          func() time.Time
}

// NewOrderService panics if repo is nil. With strictTotals the order totals
// are recomputed from the items and mismatches are rejected.
func NewOrderService(repo ports.OrderRepository, strictTotals bool) *OrderService {
	if repo == nil {
		panic("services.NewOrderService: nil repository")
	}
	return &OrderService{
		repo:         repo,
		strictTotals: strictTotals,
		now:          time.Now,
	}
}

// Create validates order, applies creation defaults and writes it. Nothing is
// written when validation fails.
func (s *OrderService) Create(ctx context.Context, order domain.Order) (*domain.Order, error) {
	ctx, span := tracer.Start(ctx, "orders.Create")
	defer span.End()
	span.SetAttributes(attribute.String("order.number", order.OrderNumber))

	if err := domain.ValidateNew(order, s.strictTotals); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	order.Status = domain.StatusPending
	if order.Date.IsZero() {
		order.Date = now
	}
	order.CreatedAt = now
	order.UpdatedAt = now
	if order.Subtotal == 0 {
		order.Subtotal = domain.ItemsSubtotal(order.Items)
	}

	items := make([]domain.LineItem, len(order.Items))
	for i, it := range order.Items {
		it.Category = it.CategoryOf()
		items[i] = it
	}
	order.Items = items

	if err := s.repo.Create(ctx, &order); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("create order %s: %w", order.OrderNumber, err)
	}
	return &order, nil
}

// FindByCustomer returns the orders whose email or phone equals identifier,
// newest first.
func (s *OrderService) FindByCustomer(ctx context.Context, identifier string) ([]domain.Order, error) {
	ctx, span := tracer.Start(ctx, "orders.FindByCustomer")
	defer span.End()

	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, domain.Invalid("Identifier is required")
	}

	orders, err := s.repo.FindByCustomer(ctx, identifier)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("find orders by customer: %w", err)
	}
	domain.SortNewestFirst(orders)
	return orders, nil
}

// Recent returns the latest orders for the admin dashboard.
func (s *OrderService) Recent(ctx context.Context) ([]domain.Order, error) {
	ctx, span := tracer.Start(ctx, "orders.Recent")
	defer span.End()

	orders, err := s.repo.FindRecent(ctx, RecentLimit)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list recent orders: %w", err)
	}
	return orders, nil
}
