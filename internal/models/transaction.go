package models

import (
	"time"

	"options-desk/internal/errors"
)

// Transaction represents a single fill in the account's transaction history.
// Transactions are append-only and are the sole source of truth for positions.
type Transaction struct {
	Symbol    string    `json:"symbol"`
	Side      Side      `json:"side"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Fee       float64   `json:"fee"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTransaction builds a validated Transaction.
func NewTransaction(symbol string, side Side, quantity int, price, fee float64, ts time.Time) (Transaction, error) {
	if symbol == "" {
		return Transaction{}, errors.NewValidationError("symbol", symbol, "must not be empty")
	}
	if !side.Valid() {
		return Transaction{}, errors.NewValidationError("side", string(side), "must be BUY or SELL")
	}
	if quantity <= 0 {
		return Transaction{}, errors.NewValidationError("quantity", quantity, "must be positive")
	}
	if price <= 0 {
		return Transaction{}, errors.NewValidationError("price", price, "must be positive")
	}
	if fee < 0 {
		return Transaction{}, errors.NewValidationError("fee", fee, "must not be negative")
	}
	return Transaction{
		Symbol:    symbol,
		Side:      side,
		Quantity:  quantity,
		Price:     price,
		Fee:       fee,
		Timestamp: ts,
	}, nil
}

// Validate checks the transaction fields without constructing a new value.
func (t Transaction) Validate() error {
	_, err := NewTransaction(t.Symbol, t.Side, t.Quantity, t.Price, t.Fee, t.Timestamp)
	return err
}

// Position represents current holdings in one symbol, derived from the
// transaction history. Positions are never mutated directly; they are
// recomputed from the full transaction list every time.
type Position struct {
	Symbol      string  `json:"symbol"`
	Quantity    int     `json:"quantity"`
	CostBasis   float64 `json:"cost_basis"`
	AverageCost float64 `json:"average_cost"`
}
