package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/domain"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/infra/adapters/repository/memory"
)

func checkout(number string) domain.Order {
	return domain.Order{
		OrderNumber:   number,
		Customer:      domain.Customer{Name: "Sana", Email: "sana@example.com", Phone: "0321", Address: "Islamabad"},
		PaymentMethod: "COD",
		Items: []domain.LineItem{
			{Name: "Oversized Hoodie", Price: 100, Quantity: 1},
			{Name: "Plain Shirt", Price: 125, Quantity: 2},
		},
		Subtotal:    350,
		DeliveryFee: 75,
		Total:       425,
		Status:      domain.StatusDelivered,
	}
}

func TestOrderService_Create(t *testing.T) {
	repo := memory.New()
	svc := NewOrderService(repo, true)
	svc.now = func() time.Time { return now }

	created, err := svc.Create(context.Background(), checkout("FF-250312-1000"))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, created.Status, "client supplied status is ignored")
	assert.True(t, created.Date.Equal(now))
	assert.True(t, created.CreatedAt.Equal(now))
	assert.Equal(t, domain.CategoryOversizedTee, created.Items[0].Category)
	assert.Equal(t, domain.CategoryRegularFit, created.Items[1].Category)

	stored, err := repo.Get(context.Background(), "FF-250312-1000")
	require.NoError(t, err)
	assert.Equal(t, created.Items, stored.Items)
}

func TestOrderService_CreateKeepsClientDate(t *testing.T) {
	svc := NewOrderService(memory.New(), true)
	o := checkout("FF-250301-1000")
	o.Date = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	created, err := svc.Create(context.Background(), o)
	require.NoError(t, err)
	assert.True(t, created.Date.Equal(o.Date))
}

func TestOrderService_CreateRejects(t *testing.T) {
	repo := memory.New()
	svc := NewOrderService(repo, true)
	ctx := context.Background()

	bad := checkout("FF-250312-2000")
	bad.Email = "no-at-sign"
	_, err := svc.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(ctx, checkout("FF-250312-3000"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, checkout("FF-250312-3000"))
	assert.ErrorIs(t, err, domain.ErrDuplicateOrderNumber)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestOrderService_FindByCustomer(t *testing.T) {
	svc := NewOrderService(memory.New(), true)
	ctx := context.Background()

	_, err := svc.FindByCustomer(ctx, "  ")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Identifier is required", domain.Message(err))

	for i, d := range []int{3, 1, 2} {
		o := checkout(fmt.Sprintf("FF-2503%02d-100%d", d, i))
		o.Date = time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
		_, err := svc.Create(ctx, o)
		require.NoError(t, err)
	}

	got, err := svc.FindByCustomer(ctx, "0321")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Date.After(got[i-1].Date))
	}
}

func TestOrderService_RecentCapsAt100(t *testing.T) {
	svc := NewOrderService(memory.New(), false)
	ctx := context.Background()

	for i := 0; i < RecentLimit+5; i++ {
		o := checkout(fmt.Sprintf("FF-250312-%04d", 1000+i))
		o.Date = now.Add(time.Duration(i) * time.Minute)
		_, err := svc.Create(ctx, o)
		require.NoError(t, err)
	}

	recent, err := svc.Recent(ctx)
	require.NoError(t, err)
	require.Len(t, recent, RecentLimit)
	assert.Equal(t, fmt.Sprintf("FF-250312-%04d", 1000+RecentLimit+4), recent[0].OrderNumber)
}

func TestNewServices_PanicOnNilRepository(t *testing.T) {
	assert.Panics(t, func() { NewOrderService(nil, true) })
	assert.Panics(t, func() { NewStatusService(nil, nil, nil) })
	assert.Panics(t, func() { NewAnalyticsService(nil, nil) })
}
