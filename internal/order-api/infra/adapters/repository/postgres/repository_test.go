package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/ports"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/infra/adapters/repository/repotest"
)

// Requires POSTGRES_TEST_DSN pointing at a disposable database. The orders
// table is truncated before every case.
func TestRepository(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}

	repotest.Run(t, func(t *testing.T) ports.OrderRepository {
		ctx := context.Background()
		repo, err := Connect(ctx, dsn)
		require.NoError(t, err)
		_, err = repo.pool.Exec(ctx, `TRUNCATE orders`)
		require.NoError(t, err)
		t.Cleanup(func() { _ = repo.Close(ctx) })
		return repo
	})
}
