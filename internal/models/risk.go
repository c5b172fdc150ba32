package models

import (
	"encoding/json"
	"math"
)

// StrategyType identifies a canonical multi-leg option strategy shape.
type StrategyType string

const (
	StrategyLongCall       StrategyType = "LONG_CALL"
	StrategyShortCall      StrategyType = "SHORT_CALL"
	StrategyLongPut        StrategyType = "LONG_PUT"
	StrategyShortPut       StrategyType = "SHORT_PUT"
	StrategyBullCallSpread StrategyType = "BULL_CALL_SPREAD"
	StrategyBearCallSpread StrategyType = "BEAR_CALL_SPREAD"
	StrategyBullPutSpread  StrategyType = "BULL_PUT_SPREAD"
	StrategyBearPutSpread  StrategyType = "BEAR_PUT_SPREAD"
	StrategyLongStraddle   StrategyType = "LONG_STRADDLE"
	StrategyShortStraddle  StrategyType = "SHORT_STRADDLE"
	StrategyLongStrangle   StrategyType = "LONG_STRANGLE"
	StrategyShortStrangle  StrategyType = "SHORT_STRANGLE"
	StrategyIronCondor     StrategyType = "IRON_CONDOR"
	StrategyIronButterfly  StrategyType = "IRON_BUTTERFLY"
	StrategyCalendarSpread StrategyType = "CALENDAR_SPREAD"
	StrategyDiagonalSpread StrategyType = "DIAGONAL_SPREAD"
	StrategyRatioSpread    StrategyType = "RATIO_SPREAD"
	StrategyButterfly      StrategyType = "BUTTERFLY"
	StrategyCustom         StrategyType = "CUSTOM"
)

// Unbounded is the sentinel for a strategy bound with no closed-form cap.
func Unbounded() float64 { return math.Inf(1) }

// IsUnbounded reports whether v is the unbounded sentinel.
func IsUnbounded(v float64) bool { return math.IsInf(v, 1) }

// StrategyClassification describes the recognized shape of a candidate trade.
// EstimatedCost is in dollars: positive means net debit, negative net credit.
type StrategyClassification struct {
	Type          StrategyType `json:"type"`
	Legs          int          `json:"legs"`
	EstimatedCost float64      `json:"estimated_cost"`
	MaxLoss       float64      `json:"max_loss"`
	MaxProfit     float64      `json:"max_profit"`
}

// MarshalJSON renders unbounded loss/profit as the string "unlimited" so the
// result stays valid JSON.
func (c StrategyClassification) MarshalJSON() ([]byte, error) {
	bound := func(v float64) interface{} {
		if IsUnbounded(v) {
			return "unlimited"
		}
		return math.Round(v*100) / 100
	}
	return json.Marshal(struct {
		Type          StrategyType `json:"type"`
		Legs          int          `json:"legs"`
		EstimatedCost float64      `json:"estimated_cost"`
		MaxLoss       interface{}  `json:"max_loss"`
		MaxProfit     interface{}  `json:"max_profit"`
	}{
		Type:          c.Type,
		Legs:          c.Legs,
		EstimatedCost: math.Round(c.EstimatedCost*100) / 100,
		MaxLoss:       bound(c.MaxLoss),
		MaxProfit:     bound(c.MaxProfit),
	})
}

// RiskCheck is the outcome of a single risk rule evaluation. A failing
// business rule is a check, never an error.
type RiskCheck struct {
	Name    string    `json:"name"`
	Level   RiskLevel `json:"level"`
	Message string    `json:"message"`
	Current float64   `json:"current_value"`
	Limit   float64   `json:"limit_value"`
}

// GreeksImpact reports portfolio Greeks before, for, and after the trade.
type GreeksImpact struct {
	Current  GreeksVector `json:"current"`
	NewTrade GreeksVector `json:"new_trade"`
	Combined GreeksVector `json:"combined"`
}

// ProbabilitySummary reports the risk-neutral probability analysis of a
// candidate trade. Percentages are in [0,100].
type ProbabilitySummary struct {
	PoPExpiration float64   `json:"pop_expiration"`
	Breakevens    []float64 `json:"breakeven_prices"`
	Profit50      float64   `json:"profit_50_probability"`
	Profit25      float64   `json:"profit_25_probability"`
	CurrentPrice  float64   `json:"current_price"`
}

// Rounded applies two-decimal boundary rounding to every field.
func (p ProbabilitySummary) Rounded() ProbabilitySummary {
	round2 := func(v float64) float64 { return math.Round(v*100) / 100 }
	breakevens := make([]float64, len(p.Breakevens))
	for i, b := range p.Breakevens {
		breakevens[i] = round2(b)
	}
	return ProbabilitySummary{
		PoPExpiration: round2(p.PoPExpiration),
		Breakevens:    breakevens,
		Profit50:      round2(p.Profit50),
		Profit25:      round2(p.Profit25),
		CurrentPrice:  round2(p.CurrentPrice),
	}
}

// ValidationRequest is the input to trade validation.
type ValidationRequest struct {
	NewLegs       []OptionLeg `json:"new_legs"`
	ExistingLegs  []OptionLeg `json:"existing_legs"`
	PortfolioCash float64     `json:"portfolio_cash"`
	RiskProfile   RiskProfile `json:"risk_profile"`
	IVRank        float64     `json:"iv_rank"`
}

// ValidationResult is the outcome of trade validation. Passed is true iff no
// check evaluated to BLOCKER; warnings and info never block.
type ValidationResult struct {
	Passed       bool                   `json:"passed"`
	Checks       []RiskCheck            `json:"checks"`
	StrategyInfo StrategyClassification `json:"strategy_info"`
	GreeksImpact GreeksImpact           `json:"greeks_impact"`
	Probability  ProbabilitySummary     `json:"probability_analysis"`
}
