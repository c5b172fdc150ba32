// Package ledger implements FIFO tax-lot accounting over a transaction stream.
package ledger

import (
	"sort"

	"options-desk/internal/errors"
	"options-desk/internal/models"
)

// lot is a single open purchase. Lots are owned exclusively by the ledger and
// live only inside a per-symbol FIFO queue during a recompute.
type lot struct {
	quantity    int
	costPerUnit float64
}

// Result is the output of a full recompute over the transaction history.
type Result struct {
	Positions   []models.Position
	RealizedPnL float64
}

// Recompute folds the full chronological transaction list into current
// positions and total realized P&L. It is a pure function: it holds no state
// between calls, and identical input always yields identical output.
//
// BUY pushes a lot {qty, price + fee/qty} to the back of the symbol's queue.
// SELL consumes lots from the front, oldest first, realizing
// (sellPrice - costPerUnit) x consumed per lot. Selling more than is held is
// rejected with ErrOversell; negative-quantity lots are never created.
func Recompute(transactions []models.Transaction) (Result, error) {
	for i, tx := range transactions {
		if err := tx.Validate(); err != nil {
			return Result{}, errors.Wrapf(err, "transaction %d", i)
		}
	}

	queues := make(map[string][]lot)
	var realized float64

	for _, tx := range transactions {
		switch tx.Side {
		case models.SideBuy:
			queues[tx.Symbol] = append(queues[tx.Symbol], lot{
				quantity:    tx.Quantity,
				costPerUnit: tx.Price + tx.Fee/float64(tx.Quantity),
			})
		case models.SideSell:
			queue := queues[tx.Symbol]
			held := 0
			for _, l := range queue {
				held += l.quantity
			}
			if tx.Quantity > held {
				return Result{}, errors.NewLedgerError(tx.Symbol, tx.Quantity, held, errors.ErrOversell)
			}

			remaining := tx.Quantity
			for remaining > 0 {
				front := &queue[0]
				if front.quantity <= remaining {
					realized += (tx.Price - front.costPerUnit) * float64(front.quantity)
					remaining -= front.quantity
					queue = queue[1:]
				} else {
					realized += (tx.Price - front.costPerUnit) * float64(remaining)
					front.quantity -= remaining
					remaining = 0
				}
			}
			realized -= tx.Fee
			queues[tx.Symbol] = queue
		}
	}

	positions := make([]models.Position, 0, len(queues))
	for symbol, queue := range queues {
		quantity := 0
		costBasis := 0.0
		for _, l := range queue {
			quantity += l.quantity
			costBasis += float64(l.quantity) * l.costPerUnit
		}
		if quantity == 0 {
			continue
		}
		positions = append(positions, models.Position{
			Symbol:      symbol,
			Quantity:    quantity,
			CostBasis:   costBasis,
			AverageCost: costBasis / float64(quantity),
		})
	}
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Symbol < positions[j].Symbol
	})

	return Result{Positions: positions, RealizedPnL: realized}, nil
}
