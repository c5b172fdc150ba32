package strategy

import (
	"math"
	"testing"
	"time"

	"options-desk/internal/errors"
	"options-desk/internal/models"
)

var (
	near = time.Date(2025, 7, 18, 0, 0, 0, 0, time.UTC)
	far  = time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
)

func leg(typ models.OptionType, action models.Side, strike float64, qty int, premium float64, expiry time.Time) models.OptionLeg {
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

func TestClassifyShapes(t *testing.T) {
	cases := []struct {
		name string
		legs []models.OptionLeg
		want models.StrategyType
	}{
		{"long call", []models.OptionLeg{
			leg(models.OptionCall, models.SideBuy, 100, 1, 5, near),
		}, models.StrategyLongCall},
		{"short call", []models.OptionLeg{
			leg(models.OptionCall, models.SideSell, 100, 1, 5, near),
		}, models.StrategyShortCall},
		{"long put", []models.OptionLeg{
			leg(models.OptionPut, models.SideBuy, 100, 1, 5, near),
		}, models.StrategyLongPut},
		{"short put", []models.OptionLeg{
			leg(models.OptionPut, models.SideSell, 100, 1, 5, near),
		}, models.StrategyShortPut},
		{"bull call spread", []models.OptionLeg{
			leg(models.OptionCall, models.SideBuy, 100, 1, 5, near),
			leg(models.OptionCall, models.SideSell, 110, 1, 2, near),
		}, models.StrategyBullCallSpread},
		{"bear call spread", []models.OptionLeg{
			leg(models.OptionCall, models.SideSell, 100, 1, 5, near),
			leg(models.OptionCall, models.SideBuy, 110, 1, 2, near),
		}, models.StrategyBearCallSpread},
		{"bull put spread", []models.OptionLeg{
			leg(models.OptionPut, models.SideSell, 100, 1, 5, near),
			leg(models.OptionPut, models.SideBuy, 90, 1, 2, near),
		}, models.StrategyBullPutSpread},
		{"bear put spread", []models.OptionLeg{
			leg(models.OptionPut, models.SideBuy, 100, 1, 5, near),
			leg(models.OptionPut, models.SideSell, 90, 1, 2, near),
		}, models.StrategyBearPutSpread},
		{"long straddle", []models.OptionLeg{
			leg(models.OptionCall, models.SideBuy, 100, 1, 5, near),
			leg(models.OptionPut, models.SideBuy, 100, 1, 4, near),
		}, models.StrategyLongStraddle},
		{"short straddle", []models.OptionLeg{
			leg(models.OptionCall, models.SideSell, 100, 1, 5, near),
			leg(models.OptionPut, models.SideSell, 100, 1, 4, near),
		}, models.StrategyShortStraddle},
		{"long strangle", []models.OptionLeg{
			leg(models.OptionCall, models.SideBuy, 110, 1, 3, near),
			leg(models.OptionPut, models.SideBuy, 90, 1, 2, near),
		}, models.StrategyLongStrangle},
		{"short strangle", []models.OptionLeg{
			leg(models.OptionCall, models.SideSell, 110, 1, 3, near),
			leg(models.OptionPut, models.SideSell, 90, 1, 2, near),
		}, models.StrategyShortStrangle},
		{"calendar spread", []models.OptionLeg{
			leg(models.OptionCall, models.SideSell, 100, 1, 3, near),
			leg(models.OptionCall, models.SideBuy, 100, 1, 5, far),
		}, models.StrategyCalendarSpread},
		{"diagonal spread", []models.OptionLeg{
			leg(models.OptionCall, models.SideSell, 105, 1, 3, near),
			leg(models.OptionCall, models.SideBuy, 100, 1, 6, far),
		}, models.StrategyDiagonalSpread},
		{"ratio spread", []models.OptionLeg{
			leg(models.OptionCall, models.SideBuy, 100, 1, 5, near),
			leg(models.OptionCall, models.SideSell, 110, 2, 2, near),
		}, models.StrategyRatioSpread},
		{"butterfly", []models.OptionLeg{
			leg(models.OptionCall, models.SideBuy, 90, 1, 12, near),
			leg(models.OptionCall, models.SideSell, 100, 2, 5, near),
			leg(models.OptionCall, models.SideBuy, 110, 1, 2, near),
		}, models.StrategyButterfly},
		{"iron condor", []models.OptionLeg{
			leg(models.OptionPut, models.SideBuy, 80, 1, 1, near),
			leg(models.OptionPut, models.SideSell, 90, 1, 3, near),
			leg(models.OptionCall, models.SideSell, 110, 1, 3, near),
			leg(models.OptionCall, models.SideBuy, 120, 1, 1, near),
		}, models.StrategyIronCondor},
		{"iron butterfly", []models.OptionLeg{
			leg(models.OptionPut, models.SideBuy, 90, 1, 1, near),
			leg(models.OptionPut, models.SideSell, 100, 1, 4, near),
			leg(models.OptionCall, models.SideSell, 100, 1, 4, near),
			leg(models.OptionCall, models.SideBuy, 110, 1, 1, near),
		}, models.StrategyIronButterfly},
		{"two long calls custom", []models.OptionLeg{
			leg(models.OptionCall, models.SideBuy, 100, 1, 5, near),
			leg(models.OptionCall, models.SideBuy, 110, 1, 2, near),
		}, models.StrategyCustom},
		{"mixed action straddle custom", []models.OptionLeg{
			leg(models.OptionCall, models.SideBuy, 100, 1, 5, near),
			leg(models.OptionPut, models.SideSell, 100, 1, 4, near),
		}, models.StrategyCustom},
		{"uneven butterfly custom", []models.OptionLeg{
			leg(models.OptionCall, models.SideBuy, 90, 1, 12, near),
			leg(models.OptionCall, models.SideSell, 102, 2, 5, near),
			leg(models.OptionCall, models.SideBuy, 110, 1, 2, near),
		}, models.StrategyCustom},
		{"long guts custom", []models.OptionLeg{
			leg(models.OptionCall, models.SideBuy, 90, 1, 12, near),
			leg(models.OptionPut, models.SideBuy, 110, 1, 12, near),
		}, models.StrategyCustom},
		{"inverted condor custom", []models.OptionLeg{
			leg(models.OptionPut, models.SideBuy, 95, 1, 2, near),
			leg(models.OptionPut, models.SideSell, 90, 1, 1, near),
			leg(models.OptionCall, models.SideSell, 110, 1, 3, near),
			leg(models.OptionCall, models.SideBuy, 120, 1, 1, near),
		}, models.StrategyCustom},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Classify(tc.legs)
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if got.Type != tc.want {
				t.Errorf("Classify = %s, want %s", got.Type, tc.want)
			}
			if got.Legs != len(tc.legs) {
				t.Errorf("legs = %d, want %d", got.Legs, len(tc.legs))
			}
		})
	}
}

func TestClassifyIronCondorDeterministic(t *testing.T) {
	// sell call ATM+10, buy call ATM+20, sell put ATM-10, buy put ATM-20.
	legs := []models.OptionLeg{
		leg(models.OptionCall, models.SideSell, 110, 1, 3, near),
		leg(models.OptionCall, models.SideBuy, 120, 1, 1, near),
		leg(models.OptionPut, models.SideSell, 90, 1, 3, near),
		leg(models.OptionPut, models.SideBuy, 80, 1, 1, near),
	}

	for i := 0; i < 50; i++ {
		got, err := Classify(legs)
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		if got.Type != models.StrategyIronCondor {
			t.Fatalf("iteration %d: Classify = %s, want IRON_CONDOR", i, got.Type)
		}
	}
}

func TestNetCost(t *testing.T) {
	legs := []models.OptionLeg{
		leg(models.OptionCall, models.SideBuy, 100, 1, 5, near),
		leg(models.OptionCall, models.SideSell, 110, 1, 2, near),
	}
	// (5 - 2) per share, one contract.
	if got, want := NetCost(legs), 300.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("NetCost = %v, want %v", got, want)
	}
}

func TestClassifyBounds(t *testing.T) {
	t.Run("vertical debit", func(t *testing.T) {
		got, err := Classify([]models.OptionLeg{
			leg(models.OptionCall, models.SideBuy, 100, 1, 5, near),
			leg(models.OptionCall, models.SideSell, 110, 1, 2, near),
		})
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		if math.Abs(got.EstimatedCost-300) > 1e-9 {
			t.Errorf("cost = %v, want 300", got.EstimatedCost)
		}
		if math.Abs(got.MaxLoss-300) > 1e-9 {
			t.Errorf("max loss = %v, want net debit 300", got.MaxLoss)
		}
		if math.Abs(got.MaxProfit-700) > 1e-9 {
			t.Errorf("max profit = %v, want width - debit = 700", got.MaxProfit)
		}
	})

	t.Run("vertical credit", func(t *testing.T) {
		got, err := Classify([]models.OptionLeg{
			leg(models.OptionPut, models.SideSell, 100, 1, 5, near),
			leg(models.OptionPut, models.SideBuy, 90, 1, 2, near),
		})
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		if math.Abs(got.EstimatedCost-(-300)) > 1e-9 {
			t.Errorf("cost = %v, want -300", got.EstimatedCost)
		}
		if math.Abs(got.MaxProfit-300) > 1e-9 {
			t.Errorf("max profit = %v, want credit 300", got.MaxProfit)
		}
		if math.Abs(got.MaxLoss-700) > 1e-9 {
			t.Errorf("max loss = %v, want width - credit = 700", got.MaxLoss)
		}
	})

	t.Run("long call unbounded profit", func(t *testing.T) {
		got, err := Classify([]models.OptionLeg{
			leg(models.OptionCall, models.SideBuy, 100, 2, 5, near),
		})
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		if math.Abs(got.MaxLoss-1000) > 1e-9 {
			t.Errorf("max loss = %v, want debit 1000", got.MaxLoss)
		}
		if !models.IsUnbounded(got.MaxProfit) {
			t.Errorf("max profit = %v, want unbounded", got.MaxProfit)
		}
	})

	t.Run("iron condor", func(t *testing.T) {
		got, err := Classify([]models.OptionLeg{
			leg(models.OptionPut, models.SideBuy, 80, 1, 1, near),
			leg(models.OptionPut, models.SideSell, 90, 1, 3, near),
			leg(models.OptionCall, models.SideSell, 110, 1, 3, near),
			leg(models.OptionCall, models.SideBuy, 120, 1, 1, near),
		})
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		// Credit 4/share, widest wing 10.
		if math.Abs(got.EstimatedCost-(-400)) > 1e-9 {
			t.Errorf("cost = %v, want -400", got.EstimatedCost)
		}
		if math.Abs(got.MaxProfit-400) > 1e-9 {
			t.Errorf("max profit = %v, want 400", got.MaxProfit)
		}
		if math.Abs(got.MaxLoss-600) > 1e-9 {
			t.Errorf("max loss = %v, want 600", got.MaxLoss)
		}
	})

	t.Run("custom is conservatively unbounded", func(t *testing.T) {
		got, err := Classify([]models.OptionLeg{
			leg(models.OptionCall, models.SideBuy, 100, 1, 5, near),
			leg(models.OptionCall, models.SideBuy, 110, 1, 2, near),
		})
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		if !models.IsUnbounded(got.MaxLoss) || !models.IsUnbounded(got.MaxProfit) {
			t.Errorf("custom bounds = (%v, %v), want unbounded", got.MaxLoss, got.MaxProfit)
		}
	})
}

func TestClassifyGutsPairNotStrangle(t *testing.T) {
	// Put strike above call strike, both legs in the money. The short
	// strangle closed form would report the full credit as max profit, but
	// the payoff of this shape peaks at credit minus strike width, so it
	// must fall through to CUSTOM with conservative bounds.
	got, err := Classify([]models.OptionLeg{
		leg(models.OptionPut, models.SideSell, 110, 1, 12, near),
		leg(models.OptionCall, models.SideSell, 90, 1, 12, near),
	})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got.Type != models.StrategyCustom {
		t.Fatalf("Classify = %s, want CUSTOM", got.Type)
	}
	if !models.IsUnbounded(got.MaxLoss) || !models.IsUnbounded(got.MaxProfit) {
		t.Errorf("bounds = (%v, %v), want unbounded", got.MaxLoss, got.MaxProfit)
	}
}

func TestClassifyErrors(t *testing.T) {
	if _, err := Classify(nil); !errors.Is(err, errors.ErrNoLegs) {
		t.Errorf("err = %v, want ErrNoLegs", err)
	}

	bad := leg(models.OptionCall, models.SideBuy, -5, 1, 5, near)
	if _, err := Classify([]models.OptionLeg{bad}); err == nil {
		t.Error("expected validation error for negative strike")
	}
}

func TestClassifyFiveLegsIsCustom(t *testing.T) {
	legs := make([]models.OptionLeg, 5)
	for i := range legs {
		legs[i] = leg(models.OptionCall, models.SideBuy, 100+float64(i)*5, 1, 3, near)
	}
	got, err := Classify(legs)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got.Type != models.StrategyCustom {
		t.Errorf("Classify = %s, want CUSTOM", got.Type)
	}
}
