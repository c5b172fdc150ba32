package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"options-desk/internal/models"
	"options-desk/internal/pricing"
	"options-desk/internal/probability"
	"options-desk/internal/strategy"
)

func newPriceCmd(app *App) *cobra.Command {
	var (
		vol  float64
		days int
	)
	cmd := &cobra.Command{
		Use:   "price <CALL|PUT> <spot> <strike>",
		Short: "Price a single option and show its Greeks",
		Example: `  odesk price CALL 450 460 --vol 0.22 --days 30
  odesk price PUT 450 440 --vol 0.25 --days 14 --json`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI)

			typ := models.OptionType(strings.ToUpper(args[0]))
			if !typ.Valid() {
				return fmt.Errorf("invalid option type %q", args[0])
			}
			spot, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid spot %q: %w", args[1], err)
			}
			strike, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid strike %q: %w", args[2], err)
			}

			quote := pricing.Price(pricing.Params{
				Spot:     spot,
				Strike:   strike,
				Rate:     app.Config.Engine.RiskFreeRate,
				Dividend: app.Config.Engine.DividendYield,
				Vol:      vol,
				Tau:      float64(days) / pricing.Year,
				Type:     typ,
			})

			if output.IsJSON() {
				return output.JSON(struct {
					Value  float64             `json:"value"`
					Greeks models.GreeksVector `json:"greeks"`
				}{quote.Value, quote.Greeks})
			}

			output.Header("%s %s @ %s, %d days, vol %.2f", typ, FormatCurrency(strike), FormatCurrency(spot), days, vol)
			output.Printf("  value: %s\n", FormatCurrency(quote.Value))
			output.Printf("  delta: %.4f  gamma: %.4f  theta: %.4f  vega: %.4f  rho: %.4f\n",
				quote.Greeks.Delta, quote.Greeks.Gamma, quote.Greeks.Theta, quote.Greeks.Vega, quote.Greeks.Rho)
			return nil
		},
	}
	cmd.Flags().Float64Var(&vol, "vol", 0.20, "implied volatility (annualized)")
	cmd.Flags().IntVar(&days, "days", 30, "days to expiry")
	return cmd
}

func newAnalyzeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [legs.json]",
		Short: "Classify a leg set and compute its probability of profit",
		Long: `Read an array of option legs from a JSON file or stdin, classify the
strategy shape, and compute breakevens and risk-neutral probability of
profit at expiration.`,
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

			var legs []models.OptionLeg
			if err := json.NewDecoder(in).Decode(&legs); err != nil {
				return fmt.Errorf("parsing legs: %w", err)
			}

			class, err := strategy.Classify(legs)
			if err != nil {
				return err
			}

			spot := legs[0].Spot
			vol := 0.0
			for _, leg := range legs {
				vol += leg.ImpliedVol
			}
			vol /= float64(len(legs))

			summary := probability.AnalyzeAt(legs, time.Now(), spot, vol,
				app.Config.Engine.RiskFreeRate, app.Config.Engine.DividendYield, class).Rounded()

			if output.IsJSON() {
				return output.JSON(struct {
					Strategy    models.StrategyClassification `json:"strategy_info"`
					Probability models.ProbabilitySummary     `json:"probability_analysis"`
				}{class, summary})
			}

			output.Header("Strategy")
			output.Printf("  %s (%d legs), cost %s, max loss %s, max profit %s\n\n",
				class.Type, class.Legs, FormatCurrency(class.EstimatedCost),
				FormatBound(class.MaxLoss), FormatBound(class.MaxProfit))
			output.Header("Probability")
			output.Printf("  PoP at expiration: %s\n", FormatPercent(summary.PoPExpiration))
			output.Printf("  breakevens: %v\n", summary.Breakevens)
			output.Printf("  50%% profit: %s, 25%% profit: %s\n",
				FormatPercent(summary.Profit50), FormatPercent(summary.Profit25))
			return nil
		},
	}
	return cmd
}
