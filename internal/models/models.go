// Package models provides domain models for the options accounting engine.
package models

// Side represents the side of a transaction or option leg.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Sign returns +1 for BUY and -1 for SELL.
func (s Side) Sign() float64 {
	if s == SideSell {
		return -1
	}
	return 1
}

// Valid reports whether the side is a known value.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// OptionType represents the type of an option contract.
type OptionType string

const (
	OptionCall OptionType = "CALL"
	OptionPut  OptionType = "PUT"
)

// Valid reports whether the option type is a known value.
func (t OptionType) Valid() bool {
	return t == OptionCall || t == OptionPut
}

// RiskLevel represents the severity of a risk check outcome.
type RiskLevel string

const (
	RiskBlocker RiskLevel = "BLOCKER"
	RiskWarning RiskLevel = "WARNING"
	RiskInfo    RiskLevel = "INFO"
	RiskPass    RiskLevel = "PASS"
)

// RiskProfile represents the account's risk tolerance.
type RiskProfile string

const (
	ProfileConservative RiskProfile = "CONSERVATIVE"
	ProfileModerate     RiskProfile = "MODERATE"
	ProfileAggressive   RiskProfile = "AGGRESSIVE"
)

// Valid reports whether the profile is a known value.
func (p RiskProfile) Valid() bool {
	switch p {
	case ProfileConservative, ProfileModerate, ProfileAggressive:
		return true
	}
	return false
}

// ContractMultiplier is the number of underlying shares per option contract.
const ContractMultiplier = 100
