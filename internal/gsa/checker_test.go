package gsa

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/travelrn/taxtrack/internal/domain"
)

func testRates() domain.GSARates {
	return domain.GSARates{
		Lodging: decimal.NewFromInt(110),
		Meals:   decimal.NewFromInt(68),
	}
}

func TestCheck_WithinLimits(t *testing.T) {
	result := Check(decimal.NewFromInt(100), decimal.NewFromInt(60), testRates())

	if !result.IsCompliant {
		t.Error("package within both ceilings should be compliant")
	}
	if !result.HousingExcess.IsZero() || !result.MealsExcess.IsZero() {
		t.Errorf("excess should be zero within limits: housing=%s meals=%s",
			result.HousingExcess, result.MealsExcess)
	}
}

func TestCheck_ExactlyAtCeiling(t *testing.T) {
	result := Check(decimal.NewFromInt(110), decimal.NewFromInt(68), testRates())

	if !result.IsCompliant {
		t.Error("stipends exactly at the ceiling are compliant")
	}
	if !result.HousingExcess.IsZero() || !result.MealsExcess.IsZero() {
		t.Error("excess should be zero at the ceiling")
	}
}

func TestCheck_HousingOverMealsUnder(t *testing.T) {
	result := Check(decimal.NewFromInt(150), decimal.NewFromInt(50), testRates())

	if result.IsCompliant {
		t.Error("one category over the ceiling breaks overall compliance")
	}
	if result.HousingWithinLimit {
		t.Error("housing should be over limit")
	}
	if !result.MealsWithinLimit {
		t.Error("meals should be within limit")
	}
	if !result.HousingExcess.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected housing excess 40, got %s", result.HousingExcess)
	}
	if !result.MealsExcess.IsZero() {
		t.Errorf("meals excess should be zero, got %s", result.MealsExcess)
	}
}

func TestCheck_BothOver(t *testing.T) {
	result := Check(decimal.NewFromInt(130), decimal.NewFromInt(80), testRates())

	if result.IsCompliant {
		t.Error("should not be compliant")
	}
	if !result.HousingExcess.Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected housing excess 20, got %s", result.HousingExcess)
	}
	if !result.MealsExcess.Equal(decimal.NewFromInt(12)) {
		t.Errorf("expected meals excess 12, got %s", result.MealsExcess)
	}
}

func TestCheck_NegativeStipendsClamped(t *testing.T) {
	result := Check(decimal.NewFromInt(-50), decimal.NewFromInt(-10), testRates())

	if !result.IsCompliant {
		t.Error("clamped zero stipends are trivially compliant")
	}
	if result.HousingExcess.Sign() < 0 || result.MealsExcess.Sign() < 0 {
		t.Error("excess must never be negative")
	}
}
