// Package risk orchestrates classification, pricing and probability analysis
// into a single validation verdict for a candidate options trade.
package risk

import (
	"math"
	"time"

	"options-desk/internal/config"
	"options-desk/internal/errors"
	"options-desk/internal/models"
	"options-desk/internal/pricing"
	"options-desk/internal/probability"
	"options-desk/internal/strategy"
)

// Validator runs the full validation pipeline. It is stateless between
// calls: every invocation works on the snapshot in the request alone.
type Validator struct {
	cfg *config.Config
	now func() time.Time
}

// NewValidator creates a Validator with the given configuration.
func NewValidator(cfg *config.Config) *Validator {
	return &Validator{cfg: cfg, now: time.Now}
}

// NewValidatorAt creates a Validator with a fixed evaluation clock.
func NewValidatorAt(cfg *config.Config, now time.Time) *Validator {
	return &Validator{cfg: cfg, now: func() time.Time { return now }}
}

// Validate classifies the candidate legs, prices current and candidate
// Greeks, runs the probability analysis and evaluates the full check
// battery. Business-rule violations come back as checks; only malformed
// input returns an error.
func (v *Validator) Validate(req models.ValidationRequest) (models.ValidationResult, error) {
	if len(req.NewLegs) == 0 {
		return models.ValidationResult{}, errors.ErrNoLegs
	}
	profile := req.RiskProfile
	if profile == "" {
		profile = models.ProfileModerate
	}
	if !profile.Valid() {
		return models.ValidationResult{}, errors.Wrapf(errors.ErrUnknownProfile, "%q", req.RiskProfile)
	}
	for i, leg := range req.ExistingLegs {
		if err := leg.Validate(); err != nil {
			return models.ValidationResult{}, errors.Wrapf(err, "existing leg %d", i)
		}
	}

	class, err := strategy.Classify(req.NewLegs)
	if err != nil {
		return models.ValidationResult{}, err
	}

	now := v.now()
	rate := v.cfg.Engine.RiskFreeRate
	div := v.cfg.Engine.DividendYield

	impact := models.GreeksImpact{
		Current:  pricing.Aggregate(req.ExistingLegs, rate, div, now),
		NewTrade: pricing.Aggregate(req.NewLegs, rate, div, now),
	}
	impact.Combined = impact.Current.Add(impact.NewTrade)

	spot := req.NewLegs[0].Spot
	prob := probability.AnalyzeAt(req.NewLegs, now, spot, meanIV(req.NewLegs), rate, div, class)

	checks := v.runChecks(req, profile, class, impact, prob, now)

	passed := true
	for _, c := range checks {
		if c.Level == models.RiskBlocker {
			passed = false
			break
		}
	}

	return models.ValidationResult{
		Passed:       passed,
		Checks:       checks,
		StrategyInfo: class,
		GreeksImpact: impact,
		Probability:  prob.Rounded(),
	}, nil
}

func meanIV(legs []models.OptionLeg) float64 {
	var sum float64
	for _, leg := range legs {
		sum += leg.ImpliedVol
	}
	return sum / float64(len(legs))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
