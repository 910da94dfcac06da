// Package postgres implements ports.OrderRepository on PostgreSQL through a
// pgx connection pool.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/domain"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/ports"
)

var _ ports.OrderRepository = (*Repository)(nil)

const uniqueViolation = "23505"

const schema = `
CREATE TABLE IF NOT EXISTS orders (
    id              BIGSERIAL PRIMARY KEY,
    order_number    TEXT NOT NULL UNIQUE,
    name            TEXT NOT NULL,
    email           TEXT NOT NULL,
    phone           TEXT NOT NULL,
    address         TEXT NOT NULL,
    payment_method  TEXT NOT NULL,
    bank_proof      TEXT NOT NULL DEFAULT '',
    items           JSONB NOT NULL,
    subtotal        DOUBLE PRECISION NOT NULL,
    delivery_fee    DOUBLE PRECISION NOT NULL,
    total           DOUBLE PRECISION NOT NULL,
    status          TEXT NOT NULL,
    date            TIMESTAMPTZ NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL,
    updated_at      TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(email);
CREATE INDEX IF NOT EXISTS idx_orders_phone ON orders(phone);
CREATE INDEX IF NOT EXISTS idx_orders_date  ON orders(date DESC);
`

const columns = `order_number, name, email, phone, address, payment_method, bank_proof,
	items, subtotal, delivery_fee, total, status, date, created_at, updated_at`

type Repository struct {
	pool *pgxpool.Pool
}

// Connect opens a pool for dsn, checks it and applies the schema.
func Connect(ctx context.Context, dsn string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: apply schema: %w", err)
	}
	return &Repository{pool: pool}, nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *Repository) Close(context.Context) error {
	r.pool.Close()
	return nil
}

func (r *Repository) Create(ctx context.Context, o *domain.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("postgres: encode items of %q: %w", o.OrderNumber, err)
	}

	q := `INSERT INTO orders (` + columns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = r.pool.Exec(ctx, q,
		o.OrderNumber, o.Name, o.Email, o.Phone, o.Address, o.PaymentMethod, o.BankProof,
		items, o.Subtotal, o.DeliveryFee, o.Total, string(o.Status),
		o.Date, o.CreatedAt, o.UpdatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("postgres: %w: %s", domain.ErrDuplicateOrderNumber, o.OrderNumber)
	}
	if err != nil {
		return fmt.Errorf("postgres: insert order %q: %w", o.OrderNumber, err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, orderNumber string) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+columns+` FROM orders WHERE order_number = $1`, orderNumber)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get order %q: %w", orderNumber, err)
	}
	return &o, nil
}

func (r *Repository) FindByCustomer(ctx context.Context, identifier string) ([]domain.Order, error) {
	return r.query(ctx, `SELECT `+columns+` FROM orders WHERE email = $1 OR phone = $1 ORDER BY date DESC, id DESC`,
		identifier)
}

func (r *Repository) FindRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	return r.query(ctx, `SELECT `+columns+` FROM orders ORDER BY date DESC, id DESC LIMIT $1`, limit)
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.Order, error) {
	return r.query(ctx, `SELECT `+columns+` FROM orders`)
}

func (r *Repository) UpdateStatus(ctx context.Context, orderNumber string, status domain.Status, at time.Time) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE order_number = $3 RETURNING `+columns,
		string(status), at, orderNumber,
	)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: update status of %q: %w", orderNumber, err)
	}
	return &o, nil
}

func (r *Repository) query(ctx context.Context, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: query orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var (
		o      domain.Order
		items  []byte
		status string
	)
	err := row.Scan(
		&o.OrderNumber, &o.Name, &o.Email, &o.Phone, &o.Address, &o.PaymentMethod, &o.BankProof,
		&items, &o.Subtotal, &o.DeliveryFee, &o.Total, &status,
		&o.Date, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return domain.Order{}, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return domain.Order{}, fmt.Errorf("decode items of %q: %w", o.OrderNumber, err)
	}
	o.Status = domain.Status(status)
	return o, nil
}
