// Package gsa validates stipend packages against government per-diem
// ceilings. Stipends above the ceiling do not disqualify an assignment,
// but the excess is at risk of being reclassified as taxable income.
package gsa

import (
	"github.com/shopspring/decimal"
	"github.com/travelrn/taxtrack/internal/domain"
)

// DefaultCONUSRates returns the standard CONUS per-diem ceilings used
// when no locality-specific rates are configured.
func DefaultCONUSRates() domain.GSARates {
	return domain.GSARates{
		Lodging: decimal.NewFromInt(110),
		Meals:   decimal.NewFromInt(68),
	}
}

// Check compares daily stipends against per-diem ceilings. Each category
// is evaluated independently; overall compliance requires both. Excess
// amounts are never negative.
func Check(dailyHousing, dailyMeals decimal.Decimal, rates domain.GSARates) domain.GSAComplianceResult {
	if dailyHousing.LessThan(decimal.Zero) {
		dailyHousing = decimal.Zero
	}
	if dailyMeals.LessThan(decimal.Zero) {
		dailyMeals = decimal.Zero
	}

	result := domain.GSAComplianceResult{
		HousingWithinLimit: dailyHousing.LessThanOrEqual(rates.Lodging),
		MealsWithinLimit:   dailyMeals.LessThanOrEqual(rates.Meals),
		HousingExcess:      decimal.Zero,
		MealsExcess:        decimal.Zero,
	}
	if !result.HousingWithinLimit {
		result.HousingExcess = dailyHousing.Sub(rates.Lodging)
	}
	if !result.MealsWithinLimit {
		result.MealsExcess = dailyMeals.Sub(rates.Meals)
	}
	result.IsCompliant = result.HousingWithinLimit && result.MealsWithinLimit
	return result
}
