package domain

import (
	"github.com/shopspring/decimal"
)

// Profile is the user-supplied input file: annual income figures, the
// declared tax home, current offers, and the compliance checklist.
type Profile struct {
	TaxYear        int             `yaml:"tax_year" json:"taxYear"`
	GrossIncome    decimal.Decimal `yaml:"gross_income" json:"grossIncome"`
	Deductions     decimal.Decimal `yaml:"deductions" json:"deductions"`
	State          string          `yaml:"state" json:"state"`
	FilingStatus   FilingStatus    `yaml:"filing_status" json:"filingStatus"`
	IsSelfEmployed bool            `yaml:"self_employed" json:"isSelfEmployed"`

	// PriorYearTax enables the safe-harbor figure in the annual report.
	PriorYearTax *decimal.Decimal `yaml:"prior_year_tax,omitempty" json:"priorYearTax,omitempty"`

	// WeeksPerYear scales weekly offer figures to annual projections.
	WeeksPerYear int `yaml:"weeks_per_year" json:"weeksPerYear"`

	Offers    []JobOffer                `yaml:"offers,omitempty" json:"offers,omitempty"`
	Checklist []ComplianceChecklistItem `yaml:"checklist,omitempty" json:"checklist,omitempty"`

	// Current assignment stipends, checked against GSA ceilings.
	DailyHousing decimal.Decimal `yaml:"daily_housing" json:"dailyHousing"`
	DailyMeals   decimal.Decimal `yaml:"daily_meals" json:"dailyMeals"`
}

// ObligationInput extracts the figures the obligation calculator needs.
func (p *Profile) ObligationInput() TaxObligationInput {
	return TaxObligationInput{
		TaxYear:        p.TaxYear,
		GrossIncome:    p.GrossIncome,
		Deductions:     p.Deductions,
		State:          p.State,
		FilingStatus:   p.FilingStatus,
		IsSelfEmployed: p.IsSelfEmployed,
	}
}
