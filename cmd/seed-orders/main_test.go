package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/domain"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/infra/adapters/repository/memory"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	created, err := seed(ctx, store, true, 25, 30, now)
	require.NoError(t, err)
	assert.Equal(t, 25, created)

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 25)
	for _, o := range all {
		assert.True(t, domain.IsOrderNumber(o.OrderNumber), o.OrderNumber)
		assert.True(t, o.Status.Valid())
		assert.False(t, o.Date.After(now))
		assert.True(t, o.Date.After(now.AddDate(0, 0, -31)))
		require.NoError(t, domain.ValidateNew(o, true))
	}
}

func TestSeed_StopsWhenNumbersRunOut(t *testing.T) {
	orig := newOrderNumber
	newOrderNumber = func(time.Time) string { return "FF-250310-1000" }
	t.Cleanup(func() { newOrderNumber = orig })

	ctx := context.Background()
	store := memory.New()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	created, err := seed(ctx, store, true, 3, 1, now)
	require.ErrorIs(t, err, domain.ErrDuplicateOrderNumber)
	assert.Equal(t, 1, created)

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
