package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/ports"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/infra/adapters/repository/repotest"
)

// Requires MONGODB_TEST_URI. Every case gets its own throwaway database.
func TestRepository(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	repotest.Run(t, func(t *testing.T) ports.OrderRepository {
		ctx := context.Background()
		db := fmt.Sprintf("fitforge_test_%d", time.Now().UnixNano())
		repo, err := Connect(ctx, uri, db)
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = repo.orders.Database().Drop(ctx)
			_ = repo.Close(ctx)
		})
		return repo
	})
}
