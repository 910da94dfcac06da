package ports

import (
	"context"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/domain"
	"github.com/jcmexdev/fitforge-orders/internal/statuslog"
)

// OrderService is the ingestion and lookup surface used by the HTTP layer.
type OrderService interface {
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)
	FindByCustomer(ctx context.Context, identifier string) ([]domain.Order, error)
	Recent(ctx context.Context) ([]domain.Order, error)
}

type StatusService interface {
	UpdateStatus(ctx context.Context, orderNumber, status string) (*domain.Order, error)
	History(ctx context.Context, orderNumber string) ([]statuslog.Entry, error)
}

type AnalyticsService interface {
	ChartData(ctx context.Context) (domain.ChartData, domain.Summary, error)
	Stats(ctx context.Context) (domain.Stats, error)
}
