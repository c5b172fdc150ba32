package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"options-desk/internal/ledger"
	"options-desk/internal/models"
)

func newPositionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "positions",
		Short: "Show current positions reconstructed from the journal",
		Long:  "Recompute current positions and realized P&L from the full transaction history using FIFO lot accounting.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI)
			ctx := context.Background()

			journal, err := app.openJournal()
			if err != nil {
				return err
			}
			defer journal.Close()

			txs, err := journal.List(ctx)
			if err != nil {
				return err
			}

			result, err := ledger.Recompute(txs)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(struct {
					Positions   []models.Position `json:"positions"`
					RealizedPnL float64           `json:"realized_pnl"`
				}{result.Positions, result.RealizedPnL})
			}

			output.Header("Positions")
			if len(result.Positions) == 0 {
				output.Println("no open positions")
			} else {
				output.Printf("%-10s %10s %14s %12s\n", "Symbol", "Qty", "Cost Basis", "Avg Cost")
				for _, p := range result.Positions {
					output.Printf("%-10s %10d %14s %12s\n",
						p.Symbol, p.Quantity, FormatCurrency(p.CostBasis), FormatCurrency(p.AverageCost))
				}
			}
			output.Printf("\nRealized P&L: %s\n", FormatPnL(result.RealizedPnL))
			return nil
		},
	}
}

func newRecordCmd(app *App) *cobra.Command {
	var (
		fee  float64
		when string
	)
	cmd := &cobra.Command{
		Use:   "record <symbol> <BUY|SELL> <quantity> <price>",
		Short: "Append a transaction to the journal",
		Example: `  odesk record AAPL BUY 100 187.50
  odesk record AAPL SELL 40 192.10 --fee 1.25`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			quantity, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", args[2], err)
			}
			price, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", args[3], err)
			}
			ts := time.Now()
			if when != "" {
				ts, err = time.Parse(time.RFC3339, when)
				if err != nil {
					return fmt.Errorf("invalid timestamp %q: %w", when, err)
				}
			}

			tx, err := models.NewTransaction(
				strings.ToUpper(args[0]),
				models.Side(strings.ToUpper(args[1])),
				quantity, price, fee, ts)
			if err != nil {
				return err
			}

			journal, err := app.openJournal()
			if err != nil {
				return err
			}
			defer journal.Close()

			if err := journal.Append(ctx, tx); err != nil {
				return err
			}
			app.Logger.Info().
				Str("symbol", tx.Symbol).
				Str("side", string(tx.Side)).
				Int("quantity", tx.Quantity).
				Float64("price", tx.Price).
				Msg("transaction recorded")
			NewOutput(cmd, app.Config.UI).Success("recorded %s %d %s @ %s", tx.Side, tx.Quantity, tx.Symbol, FormatCurrency(tx.Price))
			return nil
		},
	}
	cmd.Flags().Float64Var(&fee, "fee", 0, "transaction fee")
	cmd.Flags().StringVar(&when, "time", "", "execution time (RFC3339, default now)")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import transactions from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			journal, err := app.openJournal()
			if err != nil {
				return err
			}
			defer journal.Close()

			n, err := journal.ImportCSV(ctx, f)
			if err != nil {
				return err
			}
			app.Logger.Info().Int("count", n).Str("file", args[0]).Msg("transactions imported")
			NewOutput(cmd, app.Config.UI).Success("imported %d transactions", n)
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the transaction journal as CSV to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			journal, err := app.openJournal()
			if err != nil {
				return err
			}
			defer journal.Close()

			return journal.ExportCSV(ctx, cmd.OutOrStdout())
		},
	}
}
