package domain

import (
	"github.com/shopspring/decimal"
)

// FilingStatus identifies the federal filing status used to pick a bracket table.
type FilingStatus string

const (
	FilingSingle               FilingStatus = "single"
	FilingMarriedFilingJointly FilingStatus = "married_filing_jointly"
)

// TaxBracket represents one slice of a progressive tax schedule.
// Brackets are ordered ascending by Min; the last bracket applies to all
// income above its Min regardless of Max.
type TaxBracket struct {
	Min  decimal.Decimal `yaml:"min" json:"min"`
	Max  decimal.Decimal `yaml:"max" json:"max"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// TaxObligationInput carries the raw annual figures the obligation
// calculator needs. Amounts are annual dollars.
type TaxObligationInput struct {
	TaxYear        int             `yaml:"tax_year" json:"taxYear"`
	GrossIncome    decimal.Decimal `yaml:"gross_income" json:"grossIncome"`
	Deductions     decimal.Decimal `yaml:"deductions" json:"deductions"`
	State          string          `yaml:"state" json:"state"`
	FilingStatus   FilingStatus    `yaml:"filing_status" json:"filingStatus"`
	IsSelfEmployed bool            `yaml:"self_employed" json:"isSelfEmployed"`
}

// TaxableIncome returns gross income less deductions, floored at zero.
func (in TaxObligationInput) TaxableIncome() decimal.Decimal {
	taxable := in.GrossIncome.Sub(in.Deductions)
	if taxable.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return taxable
}

// EstimateSource distinguishes the canonical progressive calculation from
// the simplified flat-rate fallback so callers can tell them apart.
type EstimateSource string

const (
	SourceProgressive  EstimateSource = "progressive"
	SourceFlatFallback EstimateSource = "flat_fallback"
)

// TaxObligationResult is the combined annual tax owed across federal,
// state, and self-employment schedules. All components are non-negative
// and TotalTax is their sum.
type TaxObligationResult struct {
	TaxYear           int             `json:"taxYear"`
	FederalTax        decimal.Decimal `json:"federalTax"`
	StateTax          decimal.Decimal `json:"stateTax"`
	SelfEmploymentTax decimal.Decimal `json:"selfEmploymentTax"`
	TotalTax          decimal.Decimal `json:"totalTax"`

	// Statutory breakdown of the self-employment component.
	SocialSecurityTax decimal.Decimal `json:"socialSecurityTax"`
	MedicareTax       decimal.Decimal `json:"medicareTax"`

	Source EstimateSource `json:"source"`
}

// EffectiveRate returns total tax as a fraction of taxable income,
// zero when there is no taxable income.
func (r TaxObligationResult) EffectiveRate(taxableIncome decimal.Decimal) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return r.TotalTax.Div(taxableIncome)
}
