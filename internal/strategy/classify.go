// Package strategy pattern-matches a set of option legs against the
// catalogue of canonical multi-leg strategy shapes.
package strategy

import (
	"math"
	"sort"

	"options-desk/internal/errors"
	"options-desk/internal/models"
)

// strikeTol is the relative tolerance for comparing strike spacing.
const strikeTol = 1e-6

// NetCost returns the signed dollar cost of entering the legs: BUY legs pay
// premium, SELL legs collect it. Positive means net debit.
func NetCost(legs []models.OptionLeg) float64 {
	var cost float64
	for _, leg := range legs {
		cost += leg.Action.Sign() * leg.Premium * float64(leg.Quantity) * models.ContractMultiplier
	}
	return cost
}

// Classify matches 1-4 legs against the shape catalogue. Unmatched shapes
// fall back to CUSTOM with unbounded loss/profit sentinels; that is never an
// error. Malformed legs are.
func Classify(legs []models.OptionLeg) (models.StrategyClassification, error) {
	if len(legs) == 0 {
		return models.StrategyClassification{}, errors.ErrNoLegs
	}
	for i, leg := range legs {
		if err := leg.Validate(); err != nil {
			return models.StrategyClassification{}, errors.Wrapf(err, "leg %d", i)
		}
	}

	typ := matchShape(legs)
	cost := NetCost(legs)
	maxLoss, maxProfit := bounds(typ, legs, cost)

	return models.StrategyClassification{
		Type:          typ,
		Legs:          len(legs),
		EstimatedCost: cost,
		MaxLoss:       maxLoss,
		MaxProfit:     maxProfit,
	}, nil
}

func matchShape(legs []models.OptionLeg) models.StrategyType {
	switch len(legs) {
	case 1:
		return matchSingle(legs[0])
	case 2:
		return matchPair(legs)
	case 3:
		return matchTriple(legs)
	case 4:
		return matchQuad(legs)
	}
	return models.StrategyCustom
}

func matchSingle(leg models.OptionLeg) models.StrategyType {
	if leg.Type == models.OptionCall {
		if leg.Action == models.SideBuy {
			return models.StrategyLongCall
		}
		return models.StrategyShortCall
	}
	if leg.Action == models.SideBuy {
		return models.StrategyLongPut
	}
	return models.StrategyShortPut
}

func matchPair(legs []models.OptionLeg) models.StrategyType {
	a, b := legs[0], legs[1]

	if a.Type == b.Type {
		return matchSameTypePair(a, b)
	}

	// One call, one put.
	if !sameExpiry(a, b) || a.Action != b.Action || a.Quantity != b.Quantity {
		return models.StrategyCustom
	}
	if sameStrike(a, b) {
		if a.Action == models.SideBuy {
			return models.StrategyLongStraddle
		}
		return models.StrategyShortStraddle
	}
	// A strangle's put sits below its call. The inverted ordering (a "guts"
	// pair, both legs in the money) has a different payoff shape and no
	// strangle closed form.
	call, put := a, b
	if call.Type == models.OptionPut {
		call, put = put, call
	}
	if put.Strike >= call.Strike {
		return models.StrategyCustom
	}
	if a.Action == models.SideBuy {
		return models.StrategyLongStrangle
	}
	return models.StrategyShortStrangle
}

func matchSameTypePair(a, b models.OptionLeg) models.StrategyType {
	if a.Action == b.Action {
		return models.StrategyCustom
	}
	if !sameExpiry(a, b) {
		if sameStrike(a, b) {
			return models.StrategyCalendarSpread
		}
		return models.StrategyDiagonalSpread
	}
	if sameStrike(a, b) {
		return models.StrategyCustom
	}
	if a.Quantity != b.Quantity {
		return models.StrategyRatioSpread
	}

	long, short := a, b
	if long.Action == models.SideSell {
		long, short = short, long
	}
	if a.Type == models.OptionCall {
		if long.Strike < short.Strike {
			return models.StrategyBullCallSpread
		}
		return models.StrategyBearCallSpread
	}
	if long.Strike > short.Strike {
		return models.StrategyBearPutSpread
	}
	return models.StrategyBullPutSpread
}

func matchTriple(legs []models.OptionLeg) models.StrategyType {
	sorted := byStrike(legs)
	lo, mid, hi := sorted[0], sorted[1], sorted[2]

	if lo.Type != mid.Type || mid.Type != hi.Type {
		return models.StrategyCustom
	}
	if !sameExpiry(lo, mid) || !sameExpiry(mid, hi) {
		return models.StrategyCustom
	}
	if lo.Action != models.SideBuy || mid.Action != models.SideSell || hi.Action != models.SideBuy {
		return models.StrategyCustom
	}
	if mid.Quantity != 2*lo.Quantity || lo.Quantity != hi.Quantity {
		return models.StrategyCustom
	}
	if !equidistant(lo.Strike, mid.Strike, hi.Strike) {
		return models.StrategyCustom
	}
	return models.StrategyButterfly
}

func matchQuad(legs []models.OptionLeg) models.StrategyType {
	var calls, puts []models.OptionLeg
	for _, leg := range legs {
		if leg.Type == models.OptionCall {
			calls = append(calls, leg)
		} else {
			puts = append(puts, leg)
		}
	}
	if len(calls) != 2 || len(puts) != 2 {
		return models.StrategyCustom
	}
	for i := 1; i < len(legs); i++ {
		if !sameExpiry(legs[0], legs[i]) || legs[0].Quantity != legs[i].Quantity {
			return models.StrategyCustom
		}
	}

	longCall, shortCall, ok := splitPair(calls)
	if !ok {
		return models.StrategyCustom
	}
	longPut, shortPut, ok := splitPair(puts)
	if !ok {
		return models.StrategyCustom
	}

	// Wings outside the body: long put below short put, long call above
	// short call.
	if longPut.Strike >= shortPut.Strike || longCall.Strike <= shortCall.Strike {
		return models.StrategyCustom
	}
	if sameStrike(shortPut, shortCall) {
		return models.StrategyIronButterfly
	}
	if shortPut.Strike < shortCall.Strike {
		return models.StrategyIronCondor
	}
	return models.StrategyCustom
}

// splitPair separates a same-type pair into its long and short leg.
func splitPair(pair []models.OptionLeg) (long, short models.OptionLeg, ok bool) {
	if pair[0].Action == pair[1].Action {
		return long, short, false
	}
	long, short = pair[0], pair[1]
	if long.Action == models.SideSell {
		long, short = short, long
	}
	return long, short, true
}

func byStrike(legs []models.OptionLeg) []models.OptionLeg {
	sorted := append([]models.OptionLeg(nil), legs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Strike < sorted[j].Strike })
	return sorted
}

func sameExpiry(a, b models.OptionLeg) bool {
	return a.Expiry.Equal(b.Expiry)
}

func sameStrike(a, b models.OptionLeg) bool {
	return math.Abs(a.Strike-b.Strike) <= strikeTol*math.Max(a.Strike, b.Strike)
}

func equidistant(lo, mid, hi float64) bool {
	return math.Abs((mid-lo)-(hi-mid)) <= strikeTol*hi
}
