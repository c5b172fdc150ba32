package probability

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"options-desk/internal/models"
	"options-desk/internal/strategy"
)

// Property: every probability the analyzer emits lies in [0,100], for any
// single-leg position across the input space.
func TestProperty_ProbabilitiesStayInRange(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	parameters.Rng.Seed(3)

	properties := gopter.NewProperties(parameters)

	types := []models.OptionType{models.OptionCall, models.OptionPut}
	actions := []models.Side{models.SideBuy, models.SideSell}

	properties.Property("probabilities in [0,100]", prop.ForAll(
		func(typIdx, actIdx int, strike, premium, spot, vol, tau float64) bool {
			l := leg(types[typIdx], actions[actIdx], strike, 1, premium)
			l.Spot = spot
			legs := []models.OptionLeg{l}

			class, err := strategy.Classify(legs)
			if err != nil {
				return false
			}
			summary := Analyze(legs, Inputs{Spot: spot, Vol: vol, Tau: tau, Rate: 0.045}, class)

			for _, v := range []float64{summary.PoPExpiration, summary.Profit50, summary.Profit25} {
				if v < 0 || v > 100 {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 1),
		gen.IntRange(0, 1),
		gen.Float64Range(50, 200),
		gen.Float64Range(0.05, 30),
		gen.Float64Range(50, 200),
		gen.Float64Range(0.01, 2),
		gen.Float64Range(0, 3),
	))

	properties.TestingRun(t)
}

// Property: for a long call, raising the strike (and so the breakeven) with
// everything else fixed never raises the probability of profit.
func TestProperty_LongCallPoPMonotone(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(4)

	properties := gopter.NewProperties(parameters)

	properties.Property("PoP nonincreasing in strike", prop.ForAll(
		func(k1, bump, premium, vol, tau float64) bool {
			k2 := k1 + bump
			low := []models.OptionLeg{leg(models.OptionCall, models.SideBuy, k1, 1, premium)}
			high := []models.OptionLeg{leg(models.OptionCall, models.SideBuy, k2, 1, premium)}

			classLow, err1 := strategy.Classify(low)
			classHigh, err2 := strategy.Classify(high)
			if err1 != nil || err2 != nil {
				return false
			}

			in := Inputs{Spot: 100, Vol: vol, Tau: tau}
			popLow := Analyze(low, in, classLow).PoPExpiration
			popHigh := Analyze(high, in, classHigh).PoPExpiration
			return popHigh <= popLow+1e-9
		},
		gen.Float64Range(60, 140),
		gen.Float64Range(1, 50),
		gen.Float64Range(0.1, 20),
		gen.Float64Range(0.05, 1.5),
		gen.Float64Range(0.02, 2),
	))

	properties.TestingRun(t)
}
