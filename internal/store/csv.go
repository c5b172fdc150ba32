package store

import (
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"options-desk/internal/errors"
	"options-desk/internal/models"
)

// csvTimeLayout is the timestamp format used in journal CSV files.
const csvTimeLayout = time.RFC3339

// csvRow is the CSV wire format of a transaction.
type csvRow struct {
	Symbol    string  `csv:"symbol"`
	Side      string  `csv:"side"`
	Quantity  int     `csv:"quantity"`
	Price     float64 `csv:"price"`
	Fee       float64 `csv:"fee"`
	Timestamp string  `csv:"timestamp"`
}

// ReadCSV parses transactions from CSV, validating each row.
func ReadCSV(r io.Reader) ([]models.Transaction, error) {
	var rows []*csvRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, errors.Wrap(err, "parsing transaction csv")
	}

	txs := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		ts, err := time.Parse(csvTimeLayout, row.Timestamp)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d: invalid timestamp %q", i+1, row.Timestamp)
		}
		tx, err := models.NewTransaction(row.Symbol, models.Side(row.Side), row.Quantity, row.Price, row.Fee, ts)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i+1)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// WriteCSV writes transactions as CSV.
func WriteCSV(w io.Writer, txs []models.Transaction) error {
	rows := make([]*csvRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, &csvRow{
			Symbol:    tx.Symbol,
			Side:      string(tx.Side),
			Quantity:  tx.Quantity,
			Price:     tx.Price,
			Fee:       tx.Fee,
			Timestamp: tx.Timestamp.UTC().Format(csvTimeLayout),
		})
	}
	return gocsv.Marshal(rows, w)
}
