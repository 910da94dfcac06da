// Package memory is an in-process order store for local development and
// tests. Data is lost on restart.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/domain"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/ports"
)

// Ensure Repository implements the port at compile time.
var _ ports.OrderRepository = (*Repository)(nil)

type Repository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
	seq    []string // order numbers in insertion order
	closed bool
}

func New() *Repository {
	return &Repository{orders: make(map[string]domain.Order)}
}

func (r *Repository) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.OrderNumber]; exists {
		return fmt.Errorf("memory: %w: %s", domain.ErrDuplicateOrderNumber, order.OrderNumber)
	}
	r.orders[order.OrderNumber] = clone(*order)
	r.seq = append(r.seq, order.OrderNumber)
	return nil
}

func (r *Repository) Get(ctx context.Context, orderNumber string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[orderNumber]
	if !ok {
		return nil, domain.ErrNotFound
	}
	o = clone(o)
	return &o, nil
}

func (r *Repository) FindByCustomer(ctx context.Context, identifier string) ([]domain.Order, error) {
	return r.filter(0, func(o domain.Order) bool {
		return o.Email == identifier || o.Phone == identifier
	}), nil
}

func (r *Repository) FindRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	return r.filter(limit, func(domain.Order) bool { return true }), nil
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.Order, error) {
	return r.filter(0, func(domain.Order) bool { return true }), nil
}

func (r *Repository) UpdateStatus(ctx context.Context, orderNumber string, status domain.Status, at time.Time) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderNumber]
	if !ok {
		return nil, domain.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = at
	r.orders[orderNumber] = o

	o = clone(o)
	return &o, nil
}

func (r *Repository) Ping(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return fmt.Errorf("memory: repository closed")
	}
	return nil
}

func (r *Repository) Close(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	return nil
}

// filter returns matching orders newest first, at most limit when limit > 0.
// Equal dates come back latest insert first, like the SQL stores' id DESC.
func (r *Repository) filter(limit int, keep func(domain.Order) bool) []domain.Order {
	r.mu.RLock()
	out := make([]domain.Order, 0, len(r.orders))
	for i := len(r.seq) - 1; i >= 0; i-- {
		if o := r.orders[r.seq[i]]; keep(o) {
			out = append(out, clone(o))
		}
	}
	r.mu.RUnlock()

	domain.SortNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func clone(o domain.Order) domain.Order {
	o.Items = append([]domain.LineItem(nil), o.Items...)
	return o
}
