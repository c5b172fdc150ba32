package risk

import (
	"fmt"
	"math"
	"time"

	"options-desk/internal/models"
)

// runChecks evaluates the fixed battery. Every check is independent; order
// only affects display.
func (v *Validator) runChecks(
	req models.ValidationRequest,
	profile models.RiskProfile,
	class models.StrategyClassification,
	impact models.GreeksImpact,
	prob models.ProbabilitySummary,
	now time.Time,
) []models.RiskCheck {
	var checks []models.RiskCheck
	checks = append(checks, v.greekLimits(impact.Combined)...)
	checks = append(checks,
		v.capitalRequirement(class, req.PortfolioCash),
		v.probabilityThreshold(prob, profile),
		v.ivRank(class, req.IVRank),
		v.symbolConcentration(req),
		v.earlyAssignment(req.NewLegs, now),
		v.expiryConcentration(req),
		v.strikeConcentration(req),
		costClassification(class),
		strategyBounds(class),
	)
	return checks
}

// greekLimits checks combined absolute exposures against the configured
// caps. Exceeding any cap blocks the trade.
func (v *Validator) greekLimits(combined models.GreeksVector) []models.RiskCheck {
	limits := []struct {
		name  string
		value float64
		limit float64
	}{
		{"max_delta", combined.Delta, v.cfg.Risk.MaxDelta},
		{"max_gamma", combined.Gamma, v.cfg.Risk.MaxGamma},
		{"max_vega", combined.Vega, v.cfg.Risk.MaxVega},
		{"max_theta", combined.Theta, v.cfg.Risk.MaxTheta},
	}

	checks := make([]models.RiskCheck, 0, len(limits))
	for _, l := range limits {
		abs := math.Abs(l.value)
		check := models.RiskCheck{
			Name:    l.name,
			Level:   models.RiskPass,
			Message: fmt.Sprintf("combined |%s| %.2f within limit %.2f", l.name[4:], abs, l.limit),
			Current: round2(abs),
			Limit:   round2(l.limit),
		}
		if abs > l.limit {
			check.Level = models.RiskBlocker
			check.Message = fmt.Sprintf("combined |%s| %.2f exceeds limit %.2f", l.name[4:], abs, l.limit)
		}
		checks = append(checks, check)
	}
	return checks
}

func (v *Validator) capitalRequirement(class models.StrategyClassification, cash float64) models.RiskCheck {
	check := models.RiskCheck{
		Name:    "capital_requirement",
		Level:   models.RiskPass,
		Message: fmt.Sprintf("estimated cost $%.2f within available cash $%.2f", class.EstimatedCost, cash),
		Current: round2(class.EstimatedCost),
		Limit:   round2(cash),
	}
	if class.EstimatedCost > cash {
		check.Level = models.RiskBlocker
		check.Message = fmt.Sprintf("estimated cost $%.2f exceeds available cash $%.2f", class.EstimatedCost, cash)
	}
	return check
}

func (v *Validator) probabilityThreshold(prob models.ProbabilitySummary, profile models.RiskProfile) models.RiskCheck {
	min := v.cfg.Risk.MinPoP(profile)
	check := models.RiskCheck{
		Name:    "probability_threshold",
		Level:   models.RiskPass,
		Message: fmt.Sprintf("probability of profit %.2f%% meets %s floor %.2f%%", prob.PoPExpiration, profile, min),
		Current: round2(prob.PoPExpiration),
		Limit:   round2(min),
	}
	if prob.PoPExpiration < min {
		check.Level = models.RiskWarning
		check.Message = fmt.Sprintf("probability of profit %.2f%% below %s floor %.2f%%", prob.PoPExpiration, profile, min)
	}
	return check
}

func (v *Validator) ivRank(class models.StrategyClassification, ivRank float64) models.RiskCheck {
	min := v.cfg.Risk.MinIVRankForCredit
	check := models.RiskCheck{
		Name:    "iv_rank",
		Level:   models.RiskPass,
		Message: fmt.Sprintf("IV rank %.2f", ivRank),
		Current: round2(ivRank),
		Limit:   round2(min),
	}
	if class.EstimatedCost < 0 && ivRank < min {
		check.Level = models.RiskWarning
		check.Message = fmt.Sprintf("selling premium with IV rank %.2f below %.2f", ivRank, min)
	}
	return check
}

func (v *Validator) symbolConcentration(req models.ValidationRequest) models.RiskCheck {
	limit := v.cfg.Risk.MaxPositionsPerSymbol
	count := 0
	for _, sym := range candidateSymbols(req.NewLegs) {
		n := 0
		for _, leg := range req.ExistingLegs {
			if leg.Symbol == sym {
				n++
			}
		}
		if n > count {
			count = n
		}
	}
	check := models.RiskCheck{
		Name:    "symbol_concentration",
		Level:   models.RiskPass,
		Message: fmt.Sprintf("%d existing positions share the candidate symbol", count),
		Current: float64(count),
		Limit:   float64(limit),
	}
	if count > limit {
		check.Level = models.RiskWarning
		check.Message = fmt.Sprintf("%d existing positions share the candidate symbol (limit %d)", count, limit)
	}
	return check
}

func (v *Validator) earlyAssignment(legs []models.OptionLeg, now time.Time) models.RiskCheck {
	window := v.cfg.Risk.AssignmentWindowDays
	check := models.RiskCheck{
		Name:    "early_assignment",
		Level:   models.RiskPass,
		Message: "no short legs at assignment risk",
		Limit:   float64(window),
	}
	for _, leg := range legs {
		if leg.Action != models.SideSell || !leg.ITM(leg.Spot) {
			continue
		}
		days := leg.Expiry.Sub(now).Hours() / 24
		if days <= float64(window) {
			check.Level = models.RiskWarning
			check.Current = math.Max(round2(days), 0)
			check.Message = fmt.Sprintf("short %s %s %.2f is in the money %.0f days from expiry",
				leg.Symbol, leg.Type, leg.Strike, math.Max(days, 0))
			break
		}
	}
	return check
}

func (v *Validator) expiryConcentration(req models.ValidationRequest) models.RiskCheck {
	limit := v.cfg.Risk.MaxPositionsPerExpiry
	count := 0
	for _, exp := range candidateExpiries(req.NewLegs) {
		n := 0
		for _, leg := range req.ExistingLegs {
			if leg.Expiry.Equal(exp) {
				n++
			}
		}
		if n > count {
			count = n
		}
	}
	check := models.RiskCheck{
		Name:    "expiration_concentration",
		Level:   models.RiskPass,
		Message: fmt.Sprintf("%d existing positions share the candidate expiry", count),
		Current: float64(count),
		Limit:   float64(limit),
	}
	if count > limit {
		check.Level = models.RiskWarning
		check.Message = fmt.Sprintf("%d existing positions share the candidate expiry (limit %d)", count, limit)
	}
	return check
}

func (v *Validator) strikeConcentration(req models.ValidationRequest) models.RiskCheck {
	limit := v.cfg.Risk.MaxPositionsPerStrike
	count := 0
	for _, leg := range req.NewLegs {
		n := 0
		for _, existing := range req.ExistingLegs {
			if strikesMatch(existing.Strike, leg.Strike) {
				n++
			}
		}
		if n > count {
			count = n
		}
	}
	check := models.RiskCheck{
		Name:    "strike_concentration",
		Level:   models.RiskPass,
		Message: fmt.Sprintf("%d existing positions share a candidate strike", count),
		Current: float64(count),
		Limit:   float64(limit),
	}
	if count > limit {
		check.Level = models.RiskWarning
		check.Message = fmt.Sprintf("%d existing positions share a candidate strike (limit %d)", count, limit)
	}
	return check
}

func costClassification(class models.StrategyClassification) models.RiskCheck {
	msg := fmt.Sprintf("net debit of $%.2f", class.EstimatedCost)
	if class.EstimatedCost < 0 {
		msg = fmt.Sprintf("net credit of $%.2f", -class.EstimatedCost)
	}
	return models.RiskCheck{
		Name:    "cost_classification",
		Level:   models.RiskInfo,
		Message: msg,
		Current: round2(class.EstimatedCost),
	}
}

func strategyBounds(class models.StrategyClassification) models.RiskCheck {
	return models.RiskCheck{
		Name:    "strategy_bounds",
		Level:   models.RiskInfo,
		Message: fmt.Sprintf("%s: max loss %s, max profit %s", class.Type, formatBound(class.MaxLoss), formatBound(class.MaxProfit)),
		Current: boundValue(class.MaxLoss),
		Limit:   boundValue(class.MaxProfit),
	}
}

func formatBound(v float64) string {
	if models.IsUnbounded(v) {
		return "unlimited"
	}
	return fmt.Sprintf("$%.2f", v)
}

// boundValue keeps check values JSON-safe when a bound is unbounded.
func boundValue(v float64) float64 {
	if models.IsUnbounded(v) {
		return -1
	}
	return round2(v)
}

// strikeMatchTol is the relative tolerance for treating two strikes as the
// same level, so strikes that went through a JSON round trip still match.
const strikeMatchTol = 1e-6

func strikesMatch(a, b float64) bool {
	return math.Abs(a-b) <= strikeMatchTol*math.Max(a, b)
}

func candidateSymbols(legs []models.OptionLeg) []string {
	seen := make(map[string]bool)
	var symbols []string
	for _, leg := range legs {
		if !seen[leg.Symbol] {
			seen[leg.Symbol] = true
			symbols = append(symbols, leg.Symbol)
		}
	}
	return symbols
}

func candidateExpiries(legs []models.OptionLeg) []time.Time {
	var expiries []time.Time
	for _, leg := range legs {
		dup := false
		for _, e := range expiries {
			if e.Equal(leg.Expiry) {
				dup = true
				break
			}
		}
		if !dup {
			expiries = append(expiries, leg.Expiry)
		}
	}
	return expiries
}
