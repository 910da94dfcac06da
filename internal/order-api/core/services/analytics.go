package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/domain"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/ports"
)

// AnalyticsService aggregates the whole order collection on every call.
type AnalyticsService struct {
	repo ports.OrderRepository
	loc  *time.Location
	now  func() time.Time
}

// NewAnalyticsService buckets days and months in loc; nil means UTC.
func NewAnalyticsService(repo ports.OrderRepository, loc *time.Location) *AnalyticsService {
	if repo == nil {
		panic("services.NewAnalyticsService: nil repository")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsService{repo: repo, loc: loc, now: time.Now}
}

func (s *AnalyticsService) ChartData(ctx context.Context) (domain.ChartData, domain.Summary, error) {
	ctx, span := tracer.Start(ctx, "analytics.ChartData")
	defer span.End()

	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		return domain.ChartData{}, domain.Summary{}, fmt.Errorf("load orders for chart data: %w", err)
	}
	data, summary := BuildChartData(orders, s.now(), s.loc)
	return data, summary, nil
}

func (s *AnalyticsService) Stats(ctx context.Context) (domain.Stats, error) {
	ctx, span := tracer.Start(ctx, "analytics.Stats")
	defer span.End()

	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		return domain.Stats{}, fmt.Errorf("load orders for stats: %w", err)
	}
	return BuildStats(orders, s.now(), s.loc), nil
}
