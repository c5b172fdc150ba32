package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"options-desk/internal/models"
	"options-desk/internal/risk"
)

func newValidateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [request.json]",
		Short: "Run the full risk validation pipeline on a candidate trade",
		Long: `Read a validation request (new legs, existing legs, cash, risk profile)
from a JSON file or stdin, classify the trade, aggregate Greeks, compute
probability of profit, and evaluate the risk check battery.`,
		Example: `  odesk validate trade.json
  cat trade.json | odesk validate`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI)

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			var req models.ValidationRequest
			if err := json.NewDecoder(in).Decode(&req); err != nil {
				return fmt.Errorf("parsing validation request: %w", err)
			}

			validator := risk.NewValidator(app.Config)
			result, err := validator.Validate(req)
			if err != nil {
				return err
			}
			app.Logger.Info().
				Bool("passed", result.Passed).
				Str("strategy", string(result.StrategyInfo.Type)).
				Int("checks", len(result.Checks)).
				Msg("trade validated")

			if output.IsJSON() {
				return output.JSON(result)
			}
			renderResult(output, result)
			return nil
		},
	}
	return cmd
}

func renderResult(output *Output, result models.ValidationResult) {
	output.Header("Strategy")
	output.Printf("  %s (%d legs), cost %s, max loss %s, max profit %s\n\n",
		result.StrategyInfo.Type,
		result.StrategyInfo.Legs,
		FormatCurrency(result.StrategyInfo.EstimatedCost),
		FormatBound(result.StrategyInfo.MaxLoss),
		FormatBound(result.StrategyInfo.MaxProfit))

	output.Header("Greeks impact")
	output.Printf("  %-9s %10s %10s %10s %10s %10s\n", "", "Delta", "Gamma", "Theta", "Vega", "Rho")
	for _, row := range []struct {
		name string
		g    models.GreeksVector
	}{
		{"current", result.GreeksImpact.Current},
		{"new", result.GreeksImpact.NewTrade},
		{"combined", result.GreeksImpact.Combined},
	} {
		output.Printf("  %-9s %10.2f %10.4f %10.2f %10.2f %10.2f\n",
			row.name, row.g.Delta, row.g.Gamma, row.g.Theta, row.g.Vega, row.g.Rho)
	}

	output.Printf("\n")
	output.Header("Probability")
	output.Printf("  PoP at expiration: %s\n", FormatPercent(result.Probability.PoPExpiration))
	output.Printf("  breakevens: %v\n", result.Probability.Breakevens)
	output.Printf("  50%% profit: %s, 25%% profit: %s\n\n",
		FormatPercent(result.Probability.Profit50),
		FormatPercent(result.Probability.Profit25))

	output.Header("Checks")
	for _, check := range result.Checks {
		line := fmt.Sprintf("  [%-7s] %-25s %s", check.Level, check.Name, check.Message)
		switch check.Level {
		case models.RiskBlocker:
			output.Error("%s", line)
		case models.RiskWarning:
			output.Warning("%s", line)
		default:
			output.Println(line)
		}
	}

	output.Printf("\n")
	if result.Passed {
		output.Success("PASSED")
	} else {
		output.Error("BLOCKED")
	}
}
