package ports

import (
	"context"
	"time"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/domain"
)

// OrderRepository is the order store. Implementations own their connection
// lifecycle: they are opened by main, checked with Ping and released with
// Close.
type OrderRepository interface {
	// Create inserts a new order. A taken order number yields an error
	// wrapping domain.ErrDuplicateOrderNumber and leaves the store unchanged.
	Create(ctx context.Context, order *domain.Order) error

	// Get returns domain.ErrNotFound when no order carries orderNumber.
	Get(ctx context.Context, orderNumber string) (*domain.Order, error)

	// FindByCustomer matches identifier against email or phone, newest first.
	FindByCustomer(ctx context.Context, identifier string) ([]domain.Order, error)

	// FindRecent returns at most limit orders, newest first.
	FindRecent(ctx context.Context, limit int) ([]domain.Order, error)

	// FindAll returns every stored order in no particular order.
	FindAll(ctx context.Context) ([]domain.Order, error)

	// UpdateStatus overwrites status and updatedAt and returns the new record.
	UpdateStatus(ctx context.Context, orderNumber string, status domain.Status, at time.Time) (*domain.Order, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
