package probability

import (
	"math"
	"testing"
	"time"

	"options-desk/internal/models"
	"options-desk/internal/strategy"
)

var expiry = time.Date(2025, 7, 18, 0, 0, 0, 0, time.UTC)

func leg(typ models.OptionType, action models.Side, strike float64, qty int, premium float64) models.OptionLeg {
	return models.OptionLeg{
		Symbol:     "SPY",
		Type:       typ,
		Action:     action,
		Strike:     strike,
		Expiry:     expiry,
		Quantity:   qty,
		Premium:    premium,
		ImpliedVol: 0.2,
		Spot:       100,
	}
}

func TestPayoffAt(t *testing.T) {
	longCall := []models.OptionLeg{leg(models.OptionCall, models.SideBuy, 100, 1, 5)}
	cases := []struct {
		name string
		legs []models.OptionLeg
		sT   float64
		want float64
	}{
		{"long call otm", longCall, 90, -500},
		{"long call at strike", longCall, 100, -500},
		{"long call breakeven", longCall, 105, 0},
		{"long call itm", longCall, 120, 1500},
		{"short put otm", []models.OptionLeg{leg(models.OptionPut, models.SideSell, 100, 1, 4)}, 110, 400},
		{"short put itm", []models.OptionLeg{leg(models.OptionPut, models.SideSell, 100, 1, 4)}, 90, -600},
		{"two contracts scale", []models.OptionLeg{leg(models.OptionCall, models.SideBuy, 100, 2, 5)}, 120, 3000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PayoffAt(tc.legs, tc.sT); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("PayoffAt(%v) = %v, want %v", tc.sT, got, tc.want)
			}
		})
	}
}

func TestBreakevensLongCall(t *testing.T) {
	legs := []models.OptionLeg{leg(models.OptionCall, models.SideBuy, 100, 1, 5)}
	bes := Breakevens(legs, 100)
	if len(bes) != 1 {
		t.Fatalf("breakevens = %v, want one", bes)
	}
	if math.Abs(bes[0]-105) > 1e-3 {
		t.Errorf("breakeven = %v, want 105", bes[0])
	}
}

func TestBreakevensIronCondor(t *testing.T) {
	legs := []models.OptionLeg{
		leg(models.OptionPut, models.SideBuy, 80, 1, 1),
		leg(models.OptionPut, models.SideSell, 90, 1, 3),
		leg(models.OptionCall, models.SideSell, 110, 1, 3),
		leg(models.OptionCall, models.SideBuy, 120, 1, 1),
	}
	bes := Breakevens(legs, 100)
	if len(bes) != 2 {
		t.Fatalf("breakevens = %v, want two", bes)
	}
	if math.Abs(bes[0]-86) > 1e-3 || math.Abs(bes[1]-114) > 1e-3 {
		t.Errorf("breakevens = %v, want [86 114]", bes)
	}
}

func TestAnalyzeLongCallPoP(t *testing.T) {
	legs := []models.OptionLeg{leg(models.OptionCall, models.SideBuy, 100, 1, 5)}
	class, err := strategy.Classify(legs)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	// Closed form: P(S_T > 105) with ln S_T ~ N(ln 100 - 0.02, 0.2).
	in := Inputs{Spot: 100, Vol: 0.2, Tau: 1, Rate: 0, Dividend: 0}
	summary := Analyze(legs, in, class)

	want := 36.54
	if math.Abs(summary.PoPExpiration-want) > 0.1 {
		t.Errorf("PoP = %v, want ~%v", summary.PoPExpiration, want)
	}
	if summary.CurrentPrice != 100 {
		t.Errorf("current price = %v, want 100", summary.CurrentPrice)
	}
}

func TestAnalyzePoPRange(t *testing.T) {
	legs := []models.OptionLeg{
		leg(models.OptionPut, models.SideSell, 90, 1, 3),
		leg(models.OptionCall, models.SideSell, 110, 1, 3),
	}
	class, err := strategy.Classify(legs)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	summary := Analyze(legs, Inputs{Spot: 100, Vol: 0.35, Tau: 45.0 / 365}, class)

	for name, v := range map[string]float64{
		"pop": summary.PoPExpiration,
		"p50": summary.Profit50,
		"p25": summary.Profit25,
	} {
		if v < 0 || v > 100 {
			t.Errorf("%s = %v, outside [0,100]", name, v)
		}
	}
	// A short strangle around the spot should usually win.
	if summary.PoPExpiration < 50 {
		t.Errorf("short strangle PoP = %v, want > 50", summary.PoPExpiration)
	}
}

func TestAnalyzePoPMonotonicInBreakeven(t *testing.T) {
	// Holding spot/vol/tau fixed, a long call with a higher breakeven must
	// have strictly lower PoP.
	prev := math.Inf(1)
	for _, strike := range []float64{90, 100, 110, 120} {
		legs := []models.OptionLeg{leg(models.OptionCall, models.SideBuy, strike, 1, 5)}
		class, err := strategy.Classify(legs)
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		summary := Analyze(legs, Inputs{Spot: 100, Vol: 0.2, Tau: 0.5}, class)
		if summary.PoPExpiration >= prev {
			t.Errorf("PoP not strictly decreasing: strike %v gives %v, previous %v", strike, summary.PoPExpiration, prev)
		}
		prev = summary.PoPExpiration
	}
}

func TestAnalyzeDegenerateInputs(t *testing.T) {
	itm := []models.OptionLeg{leg(models.OptionCall, models.SideBuy, 80, 1, 5)}
	class, err := strategy.Classify(itm)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	// tau = 0 and spot 100: payoff = (20 - 5) * 100 > 0, certain profit.
	summary := Analyze(itm, Inputs{Spot: 100, Vol: 0.2, Tau: 0}, class)
	if summary.PoPExpiration != 100 {
		t.Errorf("PoP at expiry (profitable) = %v, want 100", summary.PoPExpiration)
	}

	otm := []models.OptionLeg{leg(models.OptionCall, models.SideBuy, 120, 1, 5)}
	class, err = strategy.Classify(otm)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	summary = Analyze(otm, Inputs{Spot: 100, Vol: 0.2, Tau: 0}, class)
	if summary.PoPExpiration != 0 {
		t.Errorf("PoP at expiry (losing) = %v, want 0", summary.PoPExpiration)
	}
}

func TestEarlyExitMonotonicInDistance(t *testing.T) {
	// Closer to the money means a higher chance of reaching 50% of max
	// profit.
	prev := -1.0
	for _, strike := range []float64{120, 110, 100, 90} {
		legs := []models.OptionLeg{leg(models.OptionCall, models.SideBuy, strike, 1, 5)}
		class, err := strategy.Classify(legs)
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		summary := Analyze(legs, Inputs{Spot: 100, Vol: 0.2, Tau: 0.5}, class)
		if summary.Profit50 < prev {
			t.Errorf("p50 not monotone: strike %v gives %v, previous %v", strike, summary.Profit50, prev)
		}
		prev = summary.Profit50
	}
}

func BenchmarkAnalyzeIronCondor(b *testing.B) {
	legs := []models.OptionLeg{
		leg(models.OptionPut, models.SideBuy, 80, 1, 1),
		leg(models.OptionPut, models.SideSell, 90, 1, 3),
		leg(models.OptionCall, models.SideSell, 110, 1, 3),
		leg(models.OptionCall, models.SideBuy, 120, 1, 1),
	}
	class, _ := strategy.Classify(legs)
	in := Inputs{Spot: 100, Vol: 0.25, Tau: 45.0 / 365}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Analyze(legs, in, class)
	}
}
