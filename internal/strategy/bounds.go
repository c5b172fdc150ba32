package strategy

import (
	"math"

	"options-desk/internal/models"
)

// bounds returns the closed-form max loss and max profit for the shape, in
// dollars. Shapes with no closed-form cap use the unbounded sentinel.
func bounds(typ models.StrategyType, legs []models.OptionLeg, cost float64) (maxLoss, maxProfit float64) {
	inf := models.Unbounded()

	switch typ {
	case models.StrategyLongCall:
		return cost, inf

	case models.StrategyShortCall:
		return inf, -cost

	case models.StrategyLongPut:
		leg := legs[0]
		return cost, (leg.Strike-leg.Premium)*float64(leg.Quantity)*models.ContractMultiplier

	case models.StrategyShortPut:
		leg := legs[0]
		return (leg.Strike - leg.Premium) * float64(leg.Quantity) * models.ContractMultiplier, -cost

	case models.StrategyBullCallSpread, models.StrategyBearPutSpread:
		// Debit verticals: risk the debit, keep width minus debit.
		width := strikeWidth(legs)
		return cost, width - cost

	case models.StrategyBearCallSpread, models.StrategyBullPutSpread:
		// Credit verticals: keep the credit, risk width minus credit.
		width := strikeWidth(legs)
		return width + cost, -cost

	case models.StrategyLongStraddle, models.StrategyLongStrangle:
		return cost, inf

	case models.StrategyShortStraddle, models.StrategyShortStrangle:
		return inf, -cost

	case models.StrategyIronCondor, models.StrategyIronButterfly:
		return wingWidth(legs) + cost, -cost

	case models.StrategyButterfly:
		sorted := byStrike(legs)
		width := (sorted[1].Strike - sorted[0].Strike) * float64(sorted[0].Quantity) * models.ContractMultiplier
		return cost, width - cost

	case models.StrategyCalendarSpread, models.StrategyDiagonalSpread:
		// Near-leg expiry value depends on the far leg's remaining time
		// value; no closed form.
		if cost > 0 {
			return cost, inf
		}
		return inf, inf

	case models.StrategyRatioSpread:
		return inf, inf
	}

	return inf, inf
}

// strikeWidth is the dollar distance between the two strikes of a vertical.
func strikeWidth(legs []models.OptionLeg) float64 {
	sorted := byStrike(legs)
	return (sorted[1].Strike - sorted[0].Strike) * float64(sorted[0].Quantity) * models.ContractMultiplier
}

// wingWidth is the widest wing of an iron condor or butterfly.
func wingWidth(legs []models.OptionLeg) float64 {
	var callWidth, putWidth float64
	var calls, puts []models.OptionLeg
	for _, leg := range legs {
		if leg.Type == models.OptionCall {
			calls = append(calls, leg)
		} else {
			puts = append(puts, leg)
		}
	}
	if len(calls) == 2 {
		callWidth = math.Abs(calls[0].Strike - calls[1].Strike)
	}
	if len(puts) == 2 {
		putWidth = math.Abs(puts[0].Strike - puts[1].Strike)
	}
	qty := float64(legs[0].Quantity)
	return math.Max(callWidth, putWidth) * qty * models.ContractMultiplier
}
