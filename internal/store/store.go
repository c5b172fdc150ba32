// Package store provides the local transaction journal.
package store

import (
	"context"
	"io"

	"options-desk/internal/models"
)

// Journal is the append-only transaction journal feeding the lot ledger.
// Transactions are never updated or deleted.
type Journal interface {
	// Append records a transaction.
	Append(ctx context.Context, tx models.Transaction) error
	// List returns all transactions in chronological order.
	List(ctx context.Context) ([]models.Transaction, error)
	// ImportCSV appends every transaction read from r.
	ImportCSV(ctx context.Context, r io.Reader) (int, error)
	// ExportCSV writes all transactions to w.
	ExportCSV(ctx context.Context, w io.Writer) error
	// Close releases underlying resources.
	Close() error
}
