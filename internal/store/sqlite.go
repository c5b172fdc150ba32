package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"options-desk/internal/errors"
	"options-desk/internal/models"
)

// SQLiteJournal implements Journal using SQLite.
type SQLiteJournal struct {
	db *sql.DB
}

// NewSQLiteJournal opens (or creates) the journal database at dbPath.
func NewSQLiteJournal(dbPath string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	j := &SQLiteJournal{db: db}
	if err := j.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return j, nil
}

func (j *SQLiteJournal) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		side TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		price REAL NOT NULL,
		fee REAL NOT NULL DEFAULT 0,
		executed_at DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_transactions_symbol ON transactions(symbol);
	CREATE INDEX IF NOT EXISTS idx_transactions_executed ON transactions(executed_at);
	`
	_, err := j.db.Exec(schema)
	return err
}

// Append records a transaction. The journal is append-only.
func (j *SQLiteJournal) Append(ctx context.Context, tx models.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO transactions (symbol, side, quantity, price, fee, executed_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		tx.Symbol, string(tx.Side), tx.Quantity, tx.Price, tx.Fee, tx.Timestamp.UTC())
	if err != nil {
		return errors.Wrap(errors.ErrDatabaseError, err.Error())
	}
	return nil
}

// List returns every transaction ordered by execution time, then insertion
// order for same-timestamp fills.
func (j *SQLiteJournal) List(ctx context.Context) ([]models.Transaction, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT symbol, side, quantity, price, fee, executed_at
		FROM transactions
		ORDER BY executed_at, id`)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseError, err.Error())
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		var side string
		var executedAt time.Time
		if err := rows.Scan(&tx.Symbol, &side, &tx.Quantity, &tx.Price, &tx.Fee, &executedAt); err != nil {
			return nil, errors.Wrap(errors.ErrDatabaseError, err.Error())
		}
		tx.Side = models.Side(side)
		tx.Timestamp = executedAt
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseError, err.Error())
	}
	return txs, nil
}

// ImportCSV appends all transactions read from r. See csv.go for the format.
func (j *SQLiteJournal) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	txs, err := ReadCSV(r)
	if err != nil {
		return 0, err
	}
	for i, tx := range txs {
		if err := j.Append(ctx, tx); err != nil {
			return i, errors.Wrapf(err, "row %d", i+1)
		}
	}
	return len(txs), nil
}

// ExportCSV writes the full journal to w.
func (j *SQLiteJournal) ExportCSV(ctx context.Context, w io.Writer) error {
	txs, err := j.List(ctx)
	if err != nil {
		return err
	}
	return WriteCSV(w, txs)
}

// Close closes the underlying database.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
