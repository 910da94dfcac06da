// Package repository selects and opens the configured order store.
package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jcmexdev/fitforge-orders/internal/config"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/ports"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/infra/adapters/repository/memory"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/infra/adapters/repository/mongo"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/infra/adapters/repository/postgres"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/infra/adapters/repository/sqlite"
)

// Open connects to the store named by cfg.StoreDriver. The caller owns the
// returned repository and must Close it.
func Open(ctx context.Context, cfg config.Config) (ports.OrderRepository, error) {
	var (
		repo ports.OrderRepository
		err  error
	)
	switch cfg.StoreDriver {
	case config.StoreMongo:
		repo, err = asPort(mongo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase))
	case config.StorePostgres:
		repo, err = asPort(postgres.Connect(ctx, cfg.PostgresDSN))
	case config.StoreSQLite:
		if err := EnsureDir(cfg.SQLitePath); err != nil {
			return nil, err
		}
		repo, err = asPort(sqlite.Open(cfg.SQLitePath))
	case config.StoreMemory:
		repo = memory.New()
	default:
		err = fmt.Errorf("repository: unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// asPort keeps a failed constructor from yielding a non-nil interface that
// holds a nil pointer.
func asPort[R ports.OrderRepository](r R, err error) (ports.OrderRepository, error) {
	if err != nil {
		return nil, err
	}
	return r, nil
}

// EnsureDir creates the parent directory of a database file.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("repository: create %s: %w", dir, err)
	}
	return nil
}
