package domain

import (
	"github.com/shopspring/decimal"
)

// RegulatoryConfig contains the statutory data the engine computes with:
// bracket tables, self-employment rates, state rules, and GSA per-diem
// ceilings. It is loaded from regulatory.yaml when present and falls back
// to built-in defaults otherwise.
type RegulatoryConfig struct {
	Metadata       RegulatoryMetadata  `yaml:"metadata" json:"metadata"`
	FederalTax     FederalTaxRules     `yaml:"federal_tax" json:"federal_tax"`
	SelfEmployment SelfEmploymentRules `yaml:"self_employment" json:"self_employment"`
	States         map[string]StateRules `yaml:"states" json:"states"`
	GSA            GSARates            `yaml:"gsa" json:"gsa"`
}

// RegulatoryMetadata describes the provenance of the regulatory data.
type RegulatoryMetadata struct {
	DataYear    int    `yaml:"data_year" json:"data_year"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// FederalTaxRules holds the progressive bracket tables by filing status.
type FederalTaxRules struct {
	BracketsSingle []TaxBracket `yaml:"brackets_single" json:"brackets_single"`
	BracketsMFJ    []TaxBracket `yaml:"brackets_married_filing_jointly" json:"brackets_married_filing_jointly"`
}

// BracketsFor returns the bracket table for a filing status, defaulting
// to single when the status is unrecognized.
func (f FederalTaxRules) BracketsFor(status FilingStatus) []TaxBracket {
	if status == FilingMarriedFilingJointly {
		return f.BracketsMFJ
	}
	return f.BracketsSingle
}

// SelfEmploymentRules contains the statutory self-employment tax split.
// The combined rate is always the sum of the two sub-rates.
type SelfEmploymentRules struct {
	SocialSecurityRate decimal.Decimal `yaml:"social_security_rate" json:"social_security_rate"`
	MedicareRate       decimal.Decimal `yaml:"medicare_rate" json:"medicare_rate"`
}

// CombinedRate returns the full self-employment rate.
func (se SelfEmploymentRules) CombinedRate() decimal.Decimal {
	return se.SocialSecurityRate.Add(se.MedicareRate)
}

// StateRules contains one state's income tax treatment. States with
// NoIncomeTax set owe zero regardless of Rate or Brackets; states with a
// bracket table are progressive; everything else is a flat Rate.
type StateRules struct {
	Rate        decimal.Decimal `yaml:"rate" json:"rate"`
	Brackets    []TaxBracket    `yaml:"brackets,omitempty" json:"brackets,omitempty"`
	NoIncomeTax bool            `yaml:"no_income_tax" json:"no_income_tax"`
}

// GSARates are the government per-diem daily ceilings used as the
// stipend compliance benchmark.
type GSARates struct {
	Lodging decimal.Decimal `yaml:"lodging" json:"lodging"`
	Meals   decimal.Decimal `yaml:"meals" json:"meals"`
}
