package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/domain"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/infra/adapters/repository/memory"
	"github.com/jcmexdev/fitforge-orders/internal/pkg/interceptors/constants"
	"github.com/jcmexdev/fitforge-orders/internal/statuslog"
)

type fakeStatusLog struct {
	mu      sync.Mutex
	entries []statuslog.Entry
	saveErr error
}

func (l *fakeStatusLog) Save(_ context.Context, e *statuslog.Entry) error {
	if l.saveErr != nil {
		return l.saveErr
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, *e)
	return nil
}

func (l *fakeStatusLog) List(_ context.Context, orderNumber string) ([]statuslog.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := []statuslog.Entry{}
	for _, e := range l.entries {
		if e.OrderNumber == orderNumber {
			out = append(out, e)
		}
	}
	return out, nil
}

func seeded(t *testing.T, number string) *memory.Repository {
	t.Helper()
	repo := memory.New()
	_, err := NewOrderService(repo, true).Create(context.Background(), checkout(number))
	require.NoError(t, err)
	return repo
}

func TestStatusService_UpdateStatus(t *testing.T) {
	repo := seeded(t, "FF-250312-1000")
	log := &fakeStatusLog{}
	svc := NewStatusService(repo, nil, log)
	later := now.Add(time.Hour)
	svc.now = func() time.Time { return later }

	ctx := context.WithValue(context.Background(), constants.ContextKeyRequestID, "req-1")
	updated, err := svc.UpdateStatus(ctx, "FF-250312-1000", "shipped")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, updated.Status)
	assert.True(t, updated.UpdatedAt.Equal(later))

	got, err := repo.Get(ctx, "FF-250312-1000")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, got.Status)

	history, err := svc.History(ctx, "FF-250312-1000")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "pending", history[0].FromStatus)
	assert.Equal(t, "shipped", history[0].ToStatus)
	assert.Equal(t, "req-1", history[0].RequestID)
}

func TestStatusService_Errors(t *testing.T) {
	repo := seeded(t, "FF-250312-1000")
	svc := NewStatusService(repo, domain.LifecycleTransitions, nil)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, "", "shipped")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateStatus(ctx, "FF-250312-1000", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateStatus(ctx, "FF-250312-1000", "returned")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateStatus(ctx, "FF-999999-9999", "shipped")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.UpdateStatus(ctx, "FF-250312-1000", "cancelled")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, "FF-250312-1000", "pending")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestStatusService_LogFailureDoesNotFailUpdate(t *testing.T) {
	repo := seeded(t, "FF-250312-1000")
	svc := NewStatusService(repo, nil, &fakeStatusLog{saveErr: errors.New("disk full")})

	updated, err := svc.UpdateStatus(context.Background(), "FF-250312-1000", "confirmed")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)
}

func TestStatusService_HistoryWithoutLog(t *testing.T) {
	svc := NewStatusService(memory.New(), nil, nil)

	history, err := svc.History(context.Background(), "FF-250312-1000")
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)

	_, err = svc.History(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAnalyticsService(t *testing.T) {
	repo := seeded(t, "FF-250312-1000")
	svc := NewAnalyticsService(repo, nil)

	_, summary, err := svc.ChartData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalOrders)
	assert.InDelta(t, 425, summary.TotalRevenue, 1e-9)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalCustomers)
	require.Len(t, stats.RecentOrders, 1)
}
