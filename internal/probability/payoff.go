// Package probability computes risk-neutral probability-of-profit and
// breakeven prices for a set of option legs.
package probability

import (
	"math"
	"sort"

	"options-desk/internal/models"
)

// PayoffAt returns the net dollar P&L of the leg set if the underlying
// settles at price sT. Expiration payoff is piecewise linear: per leg,
// sign x (intrinsic - premium) x quantity x multiplier.
func PayoffAt(legs []models.OptionLeg, sT float64) float64 {
	var total float64
	for _, leg := range legs {
		perShare := leg.Intrinsic(sT) - leg.Premium
		total += leg.Action.Sign() * perShare * float64(leg.Quantity) * models.ContractMultiplier
	}
	return total
}

// gridSteps is the resolution of the breakeven scan.
const gridSteps = 2000

// bisectTol is the relative price tolerance for breakeven refinement.
const bisectTol = 1e-9

// Breakevens finds the underlying prices at expiration where the net payoff
// crosses zero. A dense grid scan locates sign changes, refined by bisection.
func Breakevens(legs []models.OptionLeg, spot float64) []float64 {
	return crossings(legs, spot, 0)
}

// crossings finds prices where the payoff crosses the given target level.
func crossings(legs []models.OptionLeg, spot, target float64) []float64 {
	if len(legs) == 0 {
		return nil
	}

	lo, hi := scanRange(legs, spot)
	f := func(s float64) float64 { return PayoffAt(legs, s) - target }

	var roots []float64
	step := (hi - lo) / gridSteps
	prev := f(lo)
	for i := 1; i <= gridSteps; i++ {
		s := lo + float64(i)*step
		cur := f(s)
		if prev == 0 {
			roots = append(roots, s-step)
		} else if (prev < 0 && cur > 0) || (prev > 0 && cur < 0) {
			roots = append(roots, bisect(f, s-step, s))
		}
		prev = cur
	}
	sort.Float64s(roots)
	return dedupe(roots, spot*bisectTol*10)
}

// scanRange covers the spot and every strike with generous margin.
func scanRange(legs []models.OptionLeg, spot float64) (float64, float64) {
	lo, hi := spot, spot
	for _, leg := range legs {
		lo = math.Min(lo, leg.Strike)
		hi = math.Max(hi, leg.Strike)
	}
	return lo / 3, hi * 3
}

func bisect(f func(float64) float64, lo, hi float64) float64 {
	flo := f(lo)
	for i := 0; i < 100; i++ {
		mid := (lo + hi) / 2
		fmid := f(mid)
		if fmid == 0 || hi-lo < lo*bisectTol {
			return mid
		}
		if (flo < 0) == (fmid < 0) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

func dedupe(sorted []float64, tol float64) []float64 {
	if len(sorted) < 2 {
		return sorted
	}
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v-out[len(out)-1] > tol {
			out = append(out, v)
		}
	}
	return out
}
