package domain

import (
	"github.com/shopspring/decimal"
)

// JobOffer describes one contract's weekly compensation package.
type JobOffer struct {
	Name           string           `yaml:"name" json:"name"`
	WeeklyTaxable  decimal.Decimal  `yaml:"weekly_taxable" json:"weeklyTaxable"`
	WeeklyStipends decimal.Decimal  `yaml:"weekly_stipends" json:"weeklyStipends"`
	HoursPerWeek   decimal.Decimal  `yaml:"hours_per_week" json:"hoursPerWeek"`
	OvertimeRate   *decimal.Decimal `yaml:"overtime_rate,omitempty" json:"overtimeRate,omitempty"`
	DailyHousing   decimal.Decimal  `yaml:"daily_housing" json:"dailyHousing"`
	DailyMeals     decimal.Decimal  `yaml:"daily_meals" json:"dailyMeals"`
}

// OfferComparisonResult is the projected take-home picture for one offer.
type OfferComparisonResult struct {
	Offer                JobOffer        `json:"offer"`
	WeeklyGross          decimal.Decimal `json:"weeklyGross"`
	WeeklyTakeHome       decimal.Decimal `json:"weeklyTakeHome"`
	AnnualGross          decimal.Decimal `json:"annualGross"`
	AnnualTakeHome       decimal.Decimal `json:"annualTakeHome"`
	BlendedHourlyRate    decimal.Decimal `json:"blendedHourlyRate"`
	NonTaxablePercentage decimal.Decimal `json:"nonTaxablePercentage"`
	EffectiveTaxRate     decimal.Decimal `json:"effectiveTaxRate"`
	Rank                 int             `json:"rank"`
}

// GSAComplianceResult reports a stipend package against per-diem ceilings.
// Excess amounts explain how much of each stipend risks reclassification
// as taxable income.
type GSAComplianceResult struct {
	IsCompliant        bool            `json:"isCompliant"`
	HousingWithinLimit bool            `json:"housingWithinLimit"`
	MealsWithinLimit   bool            `json:"mealsWithinLimit"`
	HousingExcess      decimal.Decimal `json:"housingExcess"`
	MealsExcess        decimal.Decimal `json:"mealsExcess"`
}
