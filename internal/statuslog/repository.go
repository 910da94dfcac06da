package statuslog

import "context"

// Repository persists status log entries.
type Repository interface {
	// Save appends one entry. Rows are never updated.
	Save(ctx context.Context, entry *Entry) error

	// List returns the entries of one order, oldest first.
	List(ctx context.Context, orderNumber string) ([]Entry, error)
}
