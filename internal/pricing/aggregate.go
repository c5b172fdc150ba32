package pricing

import (
	"time"

	"options-desk/internal/models"
)

// Year is the day-count basis used to convert an expiry date to tau.
const Year = 365.0

// TimeToExpiry returns the year fraction between now and expiry, never
// negative.
func TimeToExpiry(now, expiry time.Time) float64 {
	tau := expiry.Sub(now).Hours() / 24 / Year
	if tau < 0 {
		return 0
	}
	return tau
}

// LegQuote prices a single leg using its own spot and implied volatility.
func LegQuote(leg models.OptionLeg, rate, dividend float64, now time.Time) Quote {
	return Price(Params{
		Spot:     leg.Spot,
		Strike:   leg.Strike,
		Rate:     rate,
		Dividend: dividend,
		Vol:      leg.ImpliedVol,
		Tau:      TimeToExpiry(now, leg.Expiry),
		Type:     leg.Type,
	})
}

// LegGreeks returns the leg's signed contribution to portfolio Greeks:
// per-share Greeks x sign (+1 BUY, -1 SELL) x quantity x contract multiplier.
func LegGreeks(leg models.OptionLeg, rate, dividend float64, now time.Time) models.GreeksVector {
	q := LegQuote(leg, rate, dividend, now)
	scale := leg.Action.Sign() * float64(leg.Quantity) * models.ContractMultiplier
	return q.Greeks.Scale(scale)
}

// Aggregate sums signed per-leg Greeks across the leg set.
func Aggregate(legs []models.OptionLeg, rate, dividend float64, now time.Time) models.GreeksVector {
	var total models.GreeksVector
	for _, leg := range legs {
		total = total.Add(LegGreeks(leg, rate, dividend, now))
	}
	return total
}
