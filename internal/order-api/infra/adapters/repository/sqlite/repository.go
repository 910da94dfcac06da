// Package sqlite provides a SQLite-backed implementation of
// ports.OrderRepository, used for local development and single-node
// deployments.
//
// WAL mode is enabled on Open so that dashboard reads never block checkout
// writes.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/domain"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/ports"
)

var _ ports.OrderRepository = (*Repository)(nil)

// schema is executed once on Open. Line items are kept as a JSON array so a
// row mirrors the order document.
const schema = `
CREATE TABLE IF NOT EXISTS orders (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    order_number    TEXT NOT NULL UNIQUE,
    name            TEXT NOT NULL,
    email           TEXT NOT NULL,
    phone           TEXT NOT NULL,
    address         TEXT NOT NULL,
    payment_method  TEXT NOT NULL,
    bank_proof      TEXT NOT NULL DEFAULT '',
    items           TEXT NOT NULL,
    subtotal        REAL NOT NULL,
    delivery_fee    REAL NOT NULL,
    total           REAL NOT NULL,
    status          TEXT NOT NULL,
    date            TEXT NOT NULL,
    created_at      TEXT NOT NULL,
    updated_at      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(email);
CREATE INDEX IF NOT EXISTS idx_orders_phone ON orders(phone);
CREATE INDEX IF NOT EXISTS idx_orders_date  ON orders(date);
`

const columns = `order_number, name, email, phone, address, payment_method, bank_proof,
	items, subtotal, delivery_fee, total, status, date, created_at, updated_at`

type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
//
//	repo, err := sqlite.Open("./data/orders.db")
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repository) Close(context.Context) error {
	return r.db.Close()
}

func (r *Repository) Create(ctx context.Context, o *domain.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("sqlite: encode items of %q: %w", o.OrderNumber, err)
	}

	q := `INSERT INTO orders (` + columns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, q,
		o.OrderNumber, o.Name, o.Email, o.Phone, o.Address, o.PaymentMethod, o.BankProof,
		string(items), o.Subtotal, o.DeliveryFee, o.Total, string(o.Status),
		formatTime(o.Date), formatTime(o.CreatedAt), formatTime(o.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("sqlite: %w: %s", domain.ErrDuplicateOrderNumber, o.OrderNumber)
	}
	if err != nil {
		return fmt.Errorf("sqlite: insert order %q: %w", o.OrderNumber, err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, orderNumber string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM orders WHERE order_number = ?`, orderNumber)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get order %q: %w", orderNumber, err)
	}
	return &o, nil
}

func (r *Repository) FindByCustomer(ctx context.Context, identifier string) ([]domain.Order, error) {
	return r.query(ctx, `SELECT `+columns+` FROM orders WHERE email = ? OR phone = ? ORDER BY date DESC, id DESC`,
		identifier, identifier)
}

func (r *Repository) FindRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	return r.query(ctx, `SELECT `+columns+` FROM orders ORDER BY date DESC, id DESC LIMIT ?`, limit)
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.Order, error) {
	return r.query(ctx, `SELECT `+columns+` FROM orders`)
}

func (r *Repository) UpdateStatus(ctx context.Context, orderNumber string, status domain.Status, at time.Time) (*domain.Order, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = ?, updated_at = ? WHERE order_number = ?`,
		string(status), formatTime(at), orderNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: update status of %q: %w", orderNumber, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, domain.ErrNotFound
	}
	return r.Get(ctx, orderNumber)
}

func (r *Repository) query(ctx context.Context, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (domain.Order, error) {
	var (
		o                         domain.Order
		items, status             string
		date, createdAt, updateAt string
	)
	err := s.Scan(
		&o.OrderNumber, &o.Name, &o.Email, &o.Phone, &o.Address, &o.PaymentMethod, &o.BankProof,
		&items, &o.Subtotal, &o.DeliveryFee, &o.Total, &status,
		&date, &createdAt, &updateAt,
	)
	if err != nil {
		return domain.Order{}, err
	}
	if err := json.Unmarshal([]byte(items), &o.Items); err != nil {
		return domain.Order{}, fmt.Errorf("decode items of %q: %w", o.OrderNumber, err)
	}
	o.Status = domain.Status(status)
	if o.Date, err = parseTime(date); err != nil {
		return domain.Order{}, err
	}
	if o.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Order{}, err
	}
	if o.UpdatedAt, err = parseTime(updateAt); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func isUniqueViolation(err error) bool {
	var se *moderncsqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
