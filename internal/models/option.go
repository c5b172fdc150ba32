package models

import (
	"time"

	"options-desk/internal/errors"
)

// OptionLeg represents a single option contract leg of a trade.
// Premium is quoted per share; dollar amounts scale by ContractMultiplier.
type OptionLeg struct {
	Symbol     string     `json:"symbol"`
	Type       OptionType `json:"option_type"`
	Action     Side       `json:"action"`
	Strike     float64    `json:"strike"`
	Expiry     time.Time  `json:"expiry"`
	Quantity   int        `json:"quantity"`
	Premium    float64    `json:"premium"`
	ImpliedVol float64    `json:"implied_volatility"`
	Spot       float64    `json:"underlying_price"`
}

// NewOptionLeg builds a validated OptionLeg.
func NewOptionLeg(symbol string, typ OptionType, action Side, strike float64, expiry time.Time, quantity int, premium, iv, spot float64) (OptionLeg, error) {
	leg := OptionLeg{
		Symbol:     symbol,
		Type:       typ,
		Action:     action,
		Strike:     strike,
		Expiry:     expiry,
		Quantity:   quantity,
		Premium:    premium,
		ImpliedVol: iv,
		Spot:       spot,
	}
	if err := leg.Validate(); err != nil {
		return OptionLeg{}, err
	}
	return leg, nil
}

// Validate checks the leg fields.
func (l OptionLeg) Validate() error {
	if l.Symbol == "" {
		return errors.NewValidationError("symbol", l.Symbol, "must not be empty")
	}
	if !l.Type.Valid() {
		return errors.NewValidationError("option_type", string(l.Type), "must be CALL or PUT")
	}
	if !l.Action.Valid() {
		return errors.NewValidationError("action", string(l.Action), "must be BUY or SELL")
	}
	if l.Strike <= 0 {
		return errors.NewValidationError("strike", l.Strike, "must be positive")
	}
	if l.Quantity <= 0 {
		return errors.NewValidationError("quantity", l.Quantity, "must be positive")
	}
	if l.Premium < 0 {
		return errors.NewValidationError("premium", l.Premium, "must not be negative")
	}
	if l.ImpliedVol < 0 {
		return errors.NewValidationError("implied_volatility", l.ImpliedVol, "must not be negative")
	}
	if l.Spot <= 0 {
		return errors.NewValidationError("underlying_price", l.Spot, "must be positive")
	}
	return nil
}

// ITM reports whether the leg is in the money at the given underlying price.
func (l OptionLeg) ITM(price float64) bool {
	if l.Type == OptionCall {
		return price > l.Strike
	}
	return price < l.Strike
}

// Intrinsic returns the per-share intrinsic value of the leg at the given
// underlying price.
func (l OptionLeg) Intrinsic(price float64) float64 {
	if l.Type == OptionCall {
		if price > l.Strike {
			return price - l.Strike
		}
		return 0
	}
	if price < l.Strike {
		return l.Strike - price
	}
	return 0
}

// GreeksVector holds the standard option sensitivities. Vectors are additive
// across legs: portfolio Greeks are the plain sum of signed per-leg vectors.
type GreeksVector struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

// Add returns the component-wise sum of two vectors.
func (g GreeksVector) Add(o GreeksVector) GreeksVector {
	return GreeksVector{
		Delta: g.Delta + o.Delta,
		Gamma: g.Gamma + o.Gamma,
		Theta: g.Theta + o.Theta,
		Vega:  g.Vega + o.Vega,
		Rho:   g.Rho + o.Rho,
	}
}

// Scale returns the vector multiplied by k.
func (g GreeksVector) Scale(k float64) GreeksVector {
	return GreeksVector{
		Delta: g.Delta * k,
		Gamma: g.Gamma * k,
		Theta: g.Theta * k,
		Vega:  g.Vega * k,
		Rho:   g.Rho * k,
	}
}
