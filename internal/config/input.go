package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/travelrn/taxtrack/internal/calculation"
	"github.com/travelrn/taxtrack/internal/compare"
	"github.com/travelrn/taxtrack/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of profile and regulatory YAML files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadProfile loads and validates a user profile from a YAML file.
func (ip *InputParser) LoadProfile(filename string) (*domain.Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var profile domain.Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.applyProfileDefaults(&profile)
	if err := ip.ValidateProfile(&profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}
	return &profile, nil
}

// LoadRegulatory loads regulatory data from a YAML file, with built-in
// defaults filling any section the file omits.
func (ip *InputParser) LoadRegulatory(filename string) (*domain.RegulatoryConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	regulatory := DefaultRegulatory()
	if err := yaml.Unmarshal(data, regulatory); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRegulatory(regulatory); err != nil {
		return nil, fmt.Errorf("regulatory validation failed: %w", err)
	}
	return regulatory, nil
}

// applyProfileDefaults fills optional fields and normalizes defensively
// clamped numerics.
func (ip *InputParser) applyProfileDefaults(profile *domain.Profile) {
	if profile.FilingStatus == "" {
		profile.FilingStatus = domain.FilingSingle
	}
	if profile.WeeksPerYear <= 0 {
		profile.WeeksPerYear = compare.DefaultWeeksPerYear
	}
	// Negative money inputs are caller bugs; clamp rather than error.
	if profile.GrossIncome.LessThan(decimal.Zero) {
		profile.GrossIncome = decimal.Zero
	}
	if profile.Deductions.LessThan(decimal.Zero) {
		profile.Deductions = decimal.Zero
	}
}

// ValidateProfile validates the loaded profile.
func (ip *InputParser) ValidateProfile(profile *domain.Profile) error {
	if profile.TaxYear < 2000 || profile.TaxYear > 2100 {
		return fmt.Errorf("tax year %d is out of range", profile.TaxYear)
	}
	switch profile.FilingStatus {
	case domain.FilingSingle, domain.FilingMarriedFilingJointly:
	default:
		return fmt.Errorf("unknown filing status %q", profile.FilingStatus)
	}

	for i, item := range profile.Checklist {
		if err := ip.validateChecklistItem(&item); err != nil {
			return fmt.Errorf("checklist item %d (%s) validation failed: %w", i, item.ID, err)
		}
	}
	for i, offer := range profile.Offers {
		if offer.Name == "" {
			return fmt.Errorf("offer %d: name is required", i)
		}
	}
	return nil
}

func (ip *InputParser) validateChecklistItem(item *domain.ComplianceChecklistItem) error {
	if item.ID == "" {
		return fmt.Errorf("id is required")
	}
	if item.Weight <= 0 {
		return fmt.Errorf("weight must be positive")
	}
	switch item.Category {
	case domain.CategoryResidence, domain.CategoryPresence, domain.CategoryTies,
		domain.CategoryFinancial, domain.CategoryDocumentation:
	default:
		return fmt.Errorf("unknown category %q", item.Category)
	}
	switch item.Status {
	case domain.ChecklistComplete, domain.ChecklistIncomplete,
		domain.ChecklistPartial, domain.ChecklistNotApplicable:
	default:
		return fmt.Errorf("unknown status %q", item.Status)
	}
	return nil
}

// ValidateRegulatory validates regulatory data: bracket invariants and
// rate bounds.
func (ip *InputParser) ValidateRegulatory(regulatory *domain.RegulatoryConfig) error {
	if err := calculation.ValidateBrackets(regulatory.FederalTax.BracketsSingle); err != nil {
		return fmt.Errorf("federal single brackets: %w", err)
	}
	if err := calculation.ValidateBrackets(regulatory.FederalTax.BracketsMFJ); err != nil {
		return fmt.Errorf("federal MFJ brackets: %w", err)
	}

	one := decimal.NewFromInt(1)
	se := regulatory.SelfEmployment
	if se.SocialSecurityRate.LessThan(decimal.Zero) || se.SocialSecurityRate.GreaterThanOrEqual(one) {
		return fmt.Errorf("social security rate must be in [0,1)")
	}
	if se.MedicareRate.LessThan(decimal.Zero) || se.MedicareRate.GreaterThanOrEqual(one) {
		return fmt.Errorf("medicare rate must be in [0,1)")
	}

	for code, rules := range regulatory.States {
		if rules.Rate.LessThan(decimal.Zero) || rules.Rate.GreaterThanOrEqual(one) {
			return fmt.Errorf("state %s: rate must be in [0,1)", code)
		}
		if err := calculation.ValidateBrackets(rules.Brackets); err != nil {
			return fmt.Errorf("state %s brackets: %w", code, err)
		}
	}

	if regulatory.GSA.Lodging.LessThan(decimal.Zero) || regulatory.GSA.Meals.LessThan(decimal.Zero) {
		return fmt.Errorf("GSA per-diem rates cannot be negative")
	}
	return nil
}
