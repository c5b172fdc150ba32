// Package pricing implements Black-Scholes valuation and Greeks.
package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"options-desk/internal/models"
)

// Params holds the inputs to a single option valuation.
type Params struct {
	Spot     float64
	Strike   float64
	Rate     float64 // risk-free rate, annualized
	Dividend float64 // continuous dividend yield, annualized
	Vol      float64 // implied volatility, annualized
	Tau      float64 // time to expiry in years
	Type     models.OptionType
}

// Quote is the theoretical value and per-share Greeks of one contract.
// Theta is per calendar day; vega and rho are per 1% move.
type Quote struct {
	Value  float64
	Greeks models.GreeksVector
}

// Price computes the Black-Scholes value and Greeks for the given parameters.
// Degenerate inputs (tau <= 0 or vol <= 0) collapse to intrinsic value with
// step-function delta and zero gamma/vega/theta/rho.
func Price(p Params) Quote {
	if p.Tau <= 0 || p.Vol <= 0 {
		return intrinsicQuote(p)
	}

	sqrtTau := math.Sqrt(p.Tau)
	d1 := (math.Log(p.Spot/p.Strike) + (p.Rate-p.Dividend+0.5*p.Vol*p.Vol)*p.Tau) / (p.Vol * sqrtTau)
	d2 := d1 - p.Vol*sqrtTau

	nd1 := distuv.UnitNormal.CDF(d1)
	nd2 := distuv.UnitNormal.CDF(d2)
	pd1 := distuv.UnitNormal.Prob(d1)

	discSpot := p.Spot * math.Exp(-p.Dividend*p.Tau)
	discStrike := p.Strike * math.Exp(-p.Rate*p.Tau)

	call := discSpot*nd1 - discStrike*nd2

	var value, delta, theta, rho float64
	gamma := pd1 / (p.Spot * p.Vol * sqrtTau) * math.Exp(-p.Dividend*p.Tau)
	vega := discSpot * pd1 * sqrtTau

	if p.Type == models.OptionCall {
		value = call
		delta = math.Exp(-p.Dividend*p.Tau) * nd1
		theta = -discSpot*pd1*p.Vol/(2*sqrtTau) -
			p.Rate*discStrike*nd2 +
			p.Dividend*discSpot*nd1
		rho = p.Strike * p.Tau * math.Exp(-p.Rate*p.Tau) * nd2
	} else {
		// Put via put-call parity.
		value = call - discSpot + discStrike
		delta = math.Exp(-p.Dividend*p.Tau) * (nd1 - 1)
		theta = -discSpot*pd1*p.Vol/(2*sqrtTau) +
			p.Rate*discStrike*distuv.UnitNormal.CDF(-d2) -
			p.Dividend*discSpot*distuv.UnitNormal.CDF(-d1)
		rho = -p.Strike * p.Tau * math.Exp(-p.Rate*p.Tau) * distuv.UnitNormal.CDF(-d2)
	}

	return Quote{
		Value: value,
		Greeks: models.GreeksVector{
			Delta: delta,
			Gamma: gamma,
			Theta: theta / 365, // per calendar day
			Vega:  vega / 100,  // per 1% IV move
			Rho:   rho / 100,   // per 1% rate move
		},
	}
}

// intrinsicQuote handles valuation at or after expiry.
func intrinsicQuote(p Params) Quote {
	var value, delta float64
	if p.Type == models.OptionCall {
		value = math.Max(p.Spot-p.Strike, 0)
		if p.Spot > p.Strike {
			delta = 1
		}
	} else {
		value = math.Max(p.Strike-p.Spot, 0)
		if p.Spot < p.Strike {
			delta = -1
		}
	}
	return Quote{
		Value:  value,
		Greeks: models.GreeksVector{Delta: delta},
	}
}
