package probability

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"options-desk/internal/models"
	"options-desk/internal/strategy"
)

// Inputs holds the market parameters for a probability analysis.
type Inputs struct {
	Spot     float64
	Vol      float64 // annualized volatility of the underlying
	Tau      float64 // years to the relevant expiry
	Rate     float64
	Dividend float64
}

// earlyExitFactor approximates the chance of touching a profit target before
// expiry from the terminal probability of exceeding it. A single-barrier
// first-passage argument would double the terminal mass; bounded shapes give
// back part of that, so a flatter factor is used. The contract is only the
// [0,100] range and monotonicity in distance from breakeven.
const earlyExitFactor = 1.25

// Analyze computes probability-of-profit, breakevens and early-exit
// probabilities for the leg set. All probabilities are percentages in
// [0,100].
func Analyze(legs []models.OptionLeg, in Inputs, class models.StrategyClassification) models.ProbabilitySummary {
	breakevens := Breakevens(legs, in.Spot)
	pop := profitMass(legs, in, breakevens, 0)

	p50 := earlyExit(legs, in, class, 0.50)
	p25 := earlyExit(legs, in, class, 0.25)

	return models.ProbabilitySummary{
		PoPExpiration: pop,
		Breakevens:    breakevens,
		Profit50:      p50,
		Profit25:      p25,
		CurrentPrice:  in.Spot,
	}
}

// AnalyzeAt is a convenience wrapper deriving tau from the nearest leg
// expiry.
func AnalyzeAt(legs []models.OptionLeg, now time.Time, spot, vol, rate, dividend float64, class models.StrategyClassification) models.ProbabilitySummary {
	tau := 0.0
	for i, leg := range legs {
		t := leg.Expiry.Sub(now).Hours() / 24 / 365
		if i == 0 || t < tau {
			tau = t
		}
	}
	if tau < 0 {
		tau = 0
	}
	return Analyze(legs, Inputs{Spot: spot, Vol: vol, Tau: tau, Rate: rate, Dividend: dividend}, class)
}

// profitMass returns the percentage of the terminal lognormal distribution
// falling where the payoff exceeds target, using the given crossing points.
func profitMass(legs []models.OptionLeg, in Inputs, points []float64, target float64) float64 {
	if len(legs) == 0 {
		return 0
	}

	// Degenerate market inputs: terminal price is the spot itself.
	if in.Tau <= 0 || in.Vol <= 0 {
		if PayoffAt(legs, in.Spot) > target {
			return 100
		}
		return 0
	}

	// ln S_T ~ N(ln S0 + (r - q - 0.5 sigma^2) tau, sigma^2 tau).
	dist := distuv.LogNormal{
		Mu:    math.Log(in.Spot) + (in.Rate-in.Dividend-0.5*in.Vol*in.Vol)*in.Tau,
		Sigma: in.Vol * math.Sqrt(in.Tau),
	}

	if len(points) == 0 {
		// Payoff never crosses the target: constant sign everywhere.
		if PayoffAt(legs, in.Spot) > target {
			return 100
		}
		return 0
	}

	// Sum the mass of every interval whose midpoint payoff beats the target.
	mass := 0.0
	edges := append(append([]float64{0}, points...), math.Inf(1))
	for i := 0; i < len(edges)-1; i++ {
		lo, hi := edges[i], edges[i+1]
		mid := probe(lo, hi)
		if PayoffAt(legs, mid)-target > 0 {
			mass += cdf(dist, hi) - cdf(dist, lo)
		}
	}
	return clampPct(mass * 100)
}

// probe picks a representative interior point of the interval.
func probe(lo, hi float64) float64 {
	switch {
	case math.IsInf(hi, 1):
		return lo * 2
	case lo == 0:
		return hi / 2
	default:
		return (lo + hi) / 2
	}
}

func cdf(d distuv.LogNormal, x float64) float64 {
	if x <= 0 {
		return 0
	}
	if math.IsInf(x, 1) {
		return 1
	}
	return d.CDF(x)
}

// earlyExit estimates the probability of reaching the given fraction of max
// theoretical profit before expiry. This is a documented approximation, not a
// first-passage computation: terminal mass beyond the target level, scaled by
// a fixed early-management factor.
func earlyExit(legs []models.OptionLeg, in Inputs, class models.StrategyClassification, fraction float64) float64 {
	target := exitTarget(legs, class, fraction)
	if target <= 0 {
		return 0
	}
	points := crossings(legs, in.Spot, target)
	mass := profitMass(legs, in, points, target)
	return clampPct(mass * earlyExitFactor)
}

// exitTarget converts a fraction of max profit to a dollar target. When max
// profit is unbounded the target is the same fraction of the net debit, i.e.
// a percentage return on cost.
func exitTarget(legs []models.OptionLeg, class models.StrategyClassification, fraction float64) float64 {
	if !models.IsUnbounded(class.MaxProfit) && class.MaxProfit > 0 {
		return class.MaxProfit * fraction
	}
	if class.EstimatedCost > 0 {
		return class.EstimatedCost * fraction
	}
	return strategy.NetCost(legs) * fraction
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
