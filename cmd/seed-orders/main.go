// Command seed-orders fills the configured order store with demo orders so
// the admin dashboard has something to chart.
//
//	STORE_DRIVER=sqlite go run ./cmd/seed-orders -n 200 -days 120
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/jcmexdev/fitforge-orders/internal/config"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/domain"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/ports"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/services"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/infra/adapters/repository"
	"github.com/jcmexdev/fitforge-orders/internal/pkg/telemetry"
)

type product struct {
	name  string
	price float64
}

var catalog = []product{
	{"Regular Fit Tee Black", 1800},
	{"Regular Fit Tee White", 1800},
	{"Oversized Tee Sand", 2500},
	{"Oversized Hoodie Grey", 4200},
	{"Crop Top Olive", 1500},
	{"Drop Shoulder Tee Navy", 2200},
}

var customers = []domain.Customer{
	{Name: "Ayesha Khan", Email: "ayesha@example.com", Phone: "03001234567", Address: "House 7, Gulberg, Lahore"},
	{Name: "Ali Raza", Email: "ali@example.com", Phone: "03111234567", Address: "22 Mall Road, Lahore"},
	{Name: "Sana Malik", Email: "sana@example.com", Phone: "03211234567", Address: "F-7/2, Islamabad"},
	{Name: "Usman Tariq", Email: "usman@example.com", Phone: "03331234567", Address: "Clifton Block 5, Karachi"},
	{Name: "Hira Shah", Email: "hira@example.com", Phone: "03451234567", Address: "Saddar, Peshawar"},
}

const deliveryFee = 250

// maxCollisions bounds the consecutive duplicate order numbers tolerated
// before giving up, so a run larger than the number space terminates.
const maxCollisions = 50

var newOrderNumber = domain.NewOrderNumber

func main() {
	n := flag.Int("n", 100, "number of orders to create")
	days := flag.Int("days", 120, "spread order dates over this many past days")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	telemetry.InitLogger(cfg.LogLevel)

	if err := run(cfg, *n, *days); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, n, days int) error {
	if n <= 0 || days <= 0 {
		return fmt.Errorf("-n and -days must be positive")
	}

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	created, err := seed(ctx, store, cfg.StrictTotals, n, days, time.Now())
	slog.Info("seeding finished", "driver", cfg.StoreDriver, "created", created)
	return err
}

func seed(ctx context.Context, store ports.OrderRepository, strictTotals bool, n, days int, now time.Time) (int, error) {
	orders := services.NewOrderService(store, strictTotals)
	created, collisions := 0, 0
	for created < n {
		date := now.Add(-time.Duration(rand.Int64N(int64(days) * int64(24*time.Hour))))
		order := randomOrder(date)

		saved, err := orders.Create(ctx, order)
		if errors.Is(err, domain.ErrDuplicateOrderNumber) {
			collisions++
			if collisions >= maxCollisions {
				return created, fmt.Errorf("gave up after %d consecutive order number collisions: %w", collisions, err)
			}
			continue
		}
		collisions = 0
		if err != nil {
			return created, err
		}

		if st := randomStatus(); st != domain.StatusPending {
			if _, err := store.UpdateStatus(ctx, saved.OrderNumber, st, date.Add(24*time.Hour)); err != nil {
				return created, err
			}
		}
		created++
	}
	return created, nil
}

func randomOrder(date time.Time) domain.Order {
	var (
		items    []domain.LineItem
		subtotal float64
	)
	for _, i := range rand.Perm(len(catalog))[:1+rand.IntN(3)] {
		p := catalog[i]
		qty := 1 + rand.IntN(3)
		items = append(items, domain.LineItem{
			ID:       fmt.Sprintf("sku-%d", i+1),
			Name:     p.name,
			Price:    p.price,
			Quantity: qty,
			Size:     []string{"S", "M", "L", "XL"}[rand.IntN(4)],
		})
		subtotal += p.price * float64(qty)
	}

	return domain.Order{
		OrderNumber:   newOrderNumber(date),
		Customer:      customers[rand.IntN(len(customers))],
		PaymentMethod: []string{"COD", "Bank Transfer"}[rand.IntN(2)],
		Items:         items,
		Subtotal:      subtotal,
		DeliveryFee:   deliveryFee,
		Total:         subtotal + deliveryFee,
		Date:          date.UTC(),
	}
}

func randomStatus() domain.Status {
	return domain.Statuses[rand.IntN(len(domain.Statuses))]
}
