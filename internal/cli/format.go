package cli

import (
	"fmt"

	"options-desk/internal/models"
)

// FormatCurrency formats a dollar amount with two decimals and sign.
func FormatCurrency(amount float64) string {
	if amount < 0 {
		return fmt.Sprintf("-$%.2f", -amount)
	}
	return fmt.Sprintf("$%.2f", amount)
}

// FormatPercent formats a percentage with two decimals.
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

// FormatPnL formats P&L with an explicit sign.
func FormatPnL(value float64) string {
	if value >= 0 {
		return fmt.Sprintf("+$%.2f", value)
	}
	return fmt.Sprintf("-$%.2f", -value)
}

// FormatBound renders a strategy loss/profit bound, using "unlimited" for
// the unbounded sentinel.
func FormatBound(v float64) string {
	if models.IsUnbounded(v) {
		return "unlimited"
	}
	return FormatCurrency(v)
}
