// Package repotest holds the behaviour every ports.OrderRepository must
// share, run against each store from its own package tests.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/domain"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/ports"
)

// Factory returns an empty repository. Cleanup is the factory's job.
type Factory func(t *testing.T) ports.OrderRepository

var base = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// NewOrder returns a valid pending order dated base+offset.
func NewOrder(number, email, phone string, offset time.Duration) domain.Order {
	at := base.Add(offset)
	return domain.Order{
		OrderNumber: number,
		Customer: domain.Customer{
			Name:    "Nimal Perera",
			Email:   email,
			Phone:   phone,
			Address: "12 Galle Road, Colombo",
		},
		PaymentMethod: "cod",
		Items: []domain.LineItem{
			{ID: "tee-1", Name: "Oversized Tee Black", Price: 2500, Quantity: 2, Size: "L", Category: domain.CategoryOversizedTee},
		},
		Subtotal:    5000,
		DeliveryFee: 350,
		Total:       5350,
		Status:      domain.StatusPending,
		Date:        at,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
}

// Run executes the shared cases against repositories built by newRepo.
func Run(t *testing.T, newRepo Factory) {
	t.Run("CreateAndGet", func(t *testing.T) { testCreateAndGet(t, newRepo(t)) })
	t.Run("DuplicateOrderNumber", func(t *testing.T) { testDuplicate(t, newRepo(t)) })
	t.Run("GetUnknown", func(t *testing.T) { testGetUnknown(t, newRepo(t)) })
	t.Run("FindByCustomer", func(t *testing.T) { testFindByCustomer(t, newRepo(t)) })
	t.Run("FindRecent", func(t *testing.T) { testFindRecent(t, newRepo(t)) })
	t.Run("EqualDatesNewestInsertFirst", func(t *testing.T) { testEqualDates(t, newRepo(t)) })
	t.Run("UpdateStatus", func(t *testing.T) { testUpdateStatus(t, newRepo(t)) })
	t.Run("Ping", func(t *testing.T) { require.NoError(t, newRepo(t).Ping(context.Background())) })
}

func testCreateAndGet(t *testing.T, repo ports.OrderRepository) {
	ctx := context.Background()
	o := NewOrder("FF-250310-1001", "nimal@example.com", "0771234567", 0)
	o.BankProof = "https://cdn.example.com/proof.jpg"
	require.NoError(t, repo.Create(ctx, &o))

	got, err := repo.Get(ctx, o.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, o.OrderNumber, got.OrderNumber)
	assert.Equal(t, o.Customer, got.Customer)
	assert.Equal(t, o.BankProof, got.BankProof)
	assert.Equal(t, o.Items, got.Items)
	assert.InDelta(t, 5350, got.Total, 0.001)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.True(t, got.Date.Equal(o.Date), "date %v != %v", got.Date, o.Date)
}

func testDuplicate(t *testing.T, repo ports.OrderRepository) {
	ctx := context.Background()
	o := NewOrder("FF-250310-1002", "a@example.com", "0770000001", 0)
	require.NoError(t, repo.Create(ctx, &o))

	dup := NewOrder("FF-250310-1002", "b@example.com", "0770000002", time.Hour)
	err := repo.Create(ctx, &dup)
	require.ErrorIs(t, err, domain.ErrDuplicateOrderNumber)

	got, err := repo.Get(ctx, o.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)
}

func testGetUnknown(t *testing.T, repo ports.OrderRepository) {
	_, err := repo.Get(context.Background(), "FF-000000-0000")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.UpdateStatus(context.Background(), "FF-000000-0000", domain.StatusShipped, base)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func testFindByCustomer(t *testing.T, repo ports.OrderRepository) {
	ctx := context.Background()
	older := NewOrder("FF-250310-1003", "kasun@example.com", "0711111111", 0)
	newer := NewOrder("FF-250310-1004", "kasun@example.com", "0722222222", 2*time.Hour)
	other := NewOrder("FF-250310-1005", "other@example.com", "0711111111", time.Hour)
	for _, o := range []*domain.Order{&older, &newer, &other} {
		require.NoError(t, repo.Create(ctx, o))
	}

	byEmail, err := repo.FindByCustomer(ctx, "kasun@example.com")
	require.NoError(t, err)
	require.Len(t, byEmail, 2)
	assert.Equal(t, newer.OrderNumber, byEmail[0].OrderNumber)
	assert.Equal(t, older.OrderNumber, byEmail[1].OrderNumber)

	byPhone, err := repo.FindByCustomer(ctx, "0711111111")
	require.NoError(t, err)
	require.Len(t, byPhone, 2)
	assert.Equal(t, other.OrderNumber, byPhone[0].OrderNumber)

	none, err := repo.FindByCustomer(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func testFindRecent(t *testing.T, repo ports.OrderRepository) {
	ctx := context.Background()
	for i, num := range []string{"FF-250310-2001", "FF-250310-2002", "FF-250310-2003"} {
		o := NewOrder(num, "r@example.com", "0700000000", time.Duration(i)*time.Hour)
		require.NoError(t, repo.Create(ctx, &o))
	}

	got, err := repo.FindRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "FF-250310-2003", got[0].OrderNumber)
	assert.Equal(t, "FF-250310-2002", got[1].OrderNumber)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func testEqualDates(t *testing.T, repo ports.OrderRepository) {
	ctx := context.Background()
	numbers := []string{"FF-250310-2101", "FF-250310-2102", "FF-250310-2103"}
	for _, num := range numbers {
		o := NewOrder(num, "tie@example.com", "0700000001", 0)
		require.NoError(t, repo.Create(ctx, &o))
	}
	want := []string{"FF-250310-2103", "FF-250310-2102", "FF-250310-2101"}

	byCustomer, err := repo.FindByCustomer(ctx, "tie@example.com")
	require.NoError(t, err)
	assert.Equal(t, want, orderNumbers(byCustomer))

	recent, err := repo.FindRecent(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, want, orderNumbers(recent))
}

func orderNumbers(orders []domain.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.OrderNumber
	}
	return out
}

func testUpdateStatus(t *testing.T, repo ports.OrderRepository) {
	ctx := context.Background()
	o := NewOrder("FF-250310-3001", "s@example.com", "0700000003", 0)
	require.NoError(t, repo.Create(ctx, &o))

	at := base.Add(24 * time.Hour)
	got, err := repo.UpdateStatus(ctx, o.OrderNumber, domain.StatusShipped, at)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, got.Status)
	assert.True(t, got.UpdatedAt.Equal(at))
	assert.True(t, got.CreatedAt.Equal(o.CreatedAt))

	again, err := repo.Get(ctx, o.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, again.Status)
}
