// Package sqlite provides a SQLite-backed implementation of statuslog.Repository.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jcmexdev/fitforge-orders/internal/statuslog"

	// Pure-Go driver, registered as "sqlite".
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS order_status_log (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    order_number  TEXT NOT NULL,
    from_status   TEXT NOT NULL,
    to_status     TEXT NOT NULL,
    request_id    TEXT NOT NULL DEFAULT '',
    trace_id      TEXT NOT NULL DEFAULT '',
    span_id       TEXT NOT NULL DEFAULT '',
    changed_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_order_status_log_order ON order_status_log(order_number, changed_at);
`

type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the database at path in WAL mode and applies the
// schema.
//
//	repo, err := sqlite.Open("./data/status_log.db")
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// single writer
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Save inserts a new entry. It is safe to call concurrently.
func (r *Repository) Save(ctx context.Context, entry *statuslog.Entry) error {
	const q = `
		INSERT INTO order_status_log
			(order_number, from_status, to_status, request_id, trace_id, span_id, changed_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.OrderNumber,
		entry.FromStatus,
		entry.ToStatus,
		entry.RequestID,
		entry.TraceID,
		entry.SpanID,
		formatTime(entry.ChangedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save status log for %q: %w", entry.OrderNumber, err)
	}
	return nil
}

func (r *Repository) List(ctx context.Context, orderNumber string) ([]statuslog.Entry, error) {
	const q = `
		SELECT order_number, from_status, to_status, request_id, trace_id, span_id, changed_at
		FROM   order_status_log
		WHERE  order_number = ?
		ORDER  BY changed_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, q, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list status log for %q: %w", orderNumber, err)
	}
	defer rows.Close()

	entries := []statuslog.Entry{}
	for rows.Next() {
		var (
			e         statuslog.Entry
			changedAt string
		)
		if err := rows.Scan(&e.OrderNumber, &e.FromStatus, &e.ToStatus, &e.RequestID, &e.TraceID, &e.SpanID, &changedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan status log: %w", err)
		}
		if e.ChangedAt, err = parseTime(changedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
