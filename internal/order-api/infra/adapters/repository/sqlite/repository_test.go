package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/ports"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/infra/adapters/repository/repotest"
)

func TestRepository(t *testing.T) {
	repotest.Run(t, func(t *testing.T) ports.OrderRepository {
		repo, err := Open(filepath.Join(t.TempDir(), "orders.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = repo.Close(context.Background()) })
		return repo
	})
}

func TestOpen_ReopenKeepsOrders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.db")
	ctx := context.Background()

	repo, err := Open(path)
	require.NoError(t, err)
	o := repotest.NewOrder("FF-250310-4001", "keep@example.com", "0700000004", 0)
	require.NoError(t, repo.Create(ctx, &o))
	require.NoError(t, repo.Close(ctx))

	repo, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close(ctx) })

	got, err := repo.Get(ctx, o.OrderNumber)
	require.NoError(t, err)
	require.Equal(t, "keep@example.com", got.Email)
}
