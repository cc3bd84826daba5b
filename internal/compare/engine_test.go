package compare

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/travelrn/taxtrack/internal/domain"
)

func testEngine() *Engine {
	return NewEngine(decimal.NewFromFloat(0.20), decimal.NewFromFloat(0.05), 48)
}

func TestEngine_Projection(t *testing.T) {
	engine := testEngine()

	set := engine.Compare([]domain.JobOffer{{
		Name:           "Phoenix ICU",
		WeeklyTaxable:  decimal.NewFromInt(2000),
		WeeklyStipends: decimal.NewFromInt(1000),
		HoursPerWeek:   decimal.NewFromInt(36),
	}})

	if len(set.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(set.Results))
	}
	result := set.Results[0]

	if !result.WeeklyGross.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("weekly gross: got %s", result.WeeklyGross)
	}
	// 2000 * (1 - 0.20 - 0.05) + 1000 = 2500
	if !result.WeeklyTakeHome.Equal(decimal.NewFromInt(2500)) {
		t.Errorf("weekly take-home: got %s", result.WeeklyTakeHome)
	}
	if !result.AnnualGross.Equal(decimal.NewFromInt(144000)) {
		t.Errorf("annual gross: got %s", result.AnnualGross)
	}
	if !result.AnnualTakeHome.Equal(decimal.NewFromInt(120000)) {
		t.Errorf("annual take-home: got %s", result.AnnualTakeHome)
	}

	// 3000 / 36 = 83.33...
	expectedBlended := decimal.NewFromInt(3000).Div(decimal.NewFromInt(36))
	if !result.BlendedHourlyRate.Equal(expectedBlended) {
		t.Errorf("blended rate: got %s", result.BlendedHourlyRate)
	}

	// 1000/3000 * 100
	expectedNonTax := decimal.NewFromInt(1000).Div(decimal.NewFromInt(3000)).Mul(decimal.NewFromInt(100))
	if !result.NonTaxablePercentage.Equal(expectedNonTax) {
		t.Errorf("non-taxable %%: got %s", result.NonTaxablePercentage)
	}

	// (144000-120000)/144000 * 100
	expectedEffective := decimal.NewFromInt(24000).Div(decimal.NewFromInt(144000)).Mul(decimal.NewFromInt(100))
	if !result.EffectiveTaxRate.Equal(expectedEffective) {
		t.Errorf("effective tax rate: got %s", result.EffectiveTaxRate)
	}
	if result.Rank != 1 {
		t.Errorf("single offer should rank 1, got %d", result.Rank)
	}
}

func TestEngine_RankingDescendingByTakeHome(t *testing.T) {
	engine := testEngine()

	set := engine.Compare([]domain.JobOffer{
		{Name: "Low", WeeklyTaxable: decimal.NewFromInt(1500), HoursPerWeek: decimal.NewFromInt(36)},
		{Name: "High", WeeklyTaxable: decimal.NewFromInt(1500), WeeklyStipends: decimal.NewFromInt(1200), HoursPerWeek: decimal.NewFromInt(36)},
		{Name: "Mid", WeeklyTaxable: decimal.NewFromInt(1500), WeeklyStipends: decimal.NewFromInt(500), HoursPerWeek: decimal.NewFromInt(36)},
	})

	order := []string{"High", "Mid", "Low"}
	for i, expected := range order {
		if set.Results[i].Offer.Name != expected {
			t.Errorf("position %d: expected %s, got %s", i, expected, set.Results[i].Offer.Name)
		}
		if set.Results[i].Rank != i+1 {
			t.Errorf("position %d: expected rank %d, got %d", i, i+1, set.Results[i].Rank)
		}
	}

	if best := set.Best(); best == nil || best.Offer.Name != "High" {
		t.Errorf("Best() should return the top-ranked offer")
	}
}

func TestEngine_TieKeepsInputOrder(t *testing.T) {
	engine := testEngine()

	// Identical take-home: first-listed wins the better rank. The result
	// must be deterministic across runs.
	offers := []domain.JobOffer{
		{Name: "First", WeeklyTaxable: decimal.NewFromInt(2000), HoursPerWeek: decimal.NewFromInt(36)},
		{Name: "Second", WeeklyTaxable: decimal.NewFromInt(2000), HoursPerWeek: decimal.NewFromInt(48)},
	}

	for run := 0; run < 10; run++ {
		set := engine.Compare(offers)
		if set.Results[0].Offer.Name != "First" || set.Results[0].Rank != 1 {
			t.Fatalf("run %d: first-listed offer must keep rank 1 on ties", run)
		}
		if set.Results[1].Offer.Name != "Second" || set.Results[1].Rank != 2 {
			t.Fatalf("run %d: second-listed offer must rank 2 on ties", run)
		}
	}
}

func TestEngine_DivisionGuards(t *testing.T) {
	engine := testEngine()

	set := engine.Compare([]domain.JobOffer{
		{Name: "Zero hours", WeeklyTaxable: decimal.NewFromInt(2000)},
		{Name: "Zero everything"},
	})

	for _, result := range set.Results {
		if result.BlendedHourlyRate.Sign() < 0 {
			t.Errorf("%s: negative blended rate", result.Offer.Name)
		}
	}

	var zeroEverything domain.OfferComparisonResult
	for _, result := range set.Results {
		if result.Offer.Name == "Zero everything" {
			zeroEverything = result
		}
		if result.Offer.Name == "Zero hours" && !result.BlendedHourlyRate.IsZero() {
			t.Errorf("zero hours must yield zero blended rate, got %s", result.BlendedHourlyRate)
		}
	}
	if !zeroEverything.NonTaxablePercentage.IsZero() || !zeroEverything.EffectiveTaxRate.IsZero() {
		t.Error("zero gross must yield zero percentages")
	}
}

func TestEngine_NegativeInputsClamped(t *testing.T) {
	engine := testEngine()

	set := engine.Compare([]domain.JobOffer{{
		Name:           "Broken",
		WeeklyTaxable:  decimal.NewFromInt(-500),
		WeeklyStipends: decimal.NewFromInt(-100),
		HoursPerWeek:   decimal.NewFromInt(-36),
	}})

	result := set.Results[0]
	if !result.WeeklyGross.IsZero() || !result.WeeklyTakeHome.IsZero() {
		t.Errorf("negative inputs should clamp to zero: gross=%s takeHome=%s",
			result.WeeklyGross, result.WeeklyTakeHome)
	}
}

func TestNewEngine_DefaultWeeks(t *testing.T) {
	engine := NewEngine(decimal.NewFromFloat(0.22), decimal.Zero, 0)
	if engine.WeeksPerYear != DefaultWeeksPerYear {
		t.Errorf("expected default weeks %d, got %d", DefaultWeeksPerYear, engine.WeeksPerYear)
	}
}
