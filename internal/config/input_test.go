package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelrn/taxtrack/internal/calculation"
	"github.com/travelrn/taxtrack/internal/domain"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validProfileYAML = `
tax_year: 2025
gross_income: 95000
deductions: 14600
state: FL
filing_status: single
self_employed: true
weeks_per_year: 46
daily_housing: 120
daily_meals: 60
prior_year_tax: 18000
offers:
  - name: Phoenix ICU
    weekly_taxable: 2000
    weekly_stipends: 1000
    hours_per_week: 36
    daily_housing: 120
    daily_meals: 60
checklist:
  - id: lease
    title: Maintain lease or mortgage at tax home
    category: residence
    weight: 3
    status: complete
  - id: voter
    title: Voter registration at tax home
    category: ties
    weight: 1
    status: incomplete
`

func TestLoadProfile_Valid(t *testing.T) {
	parser := NewInputParser()

	profile, err := parser.LoadProfile(writeTempYAML(t, validProfileYAML))
	require.NoError(t, err)

	assert.Equal(t, 2025, profile.TaxYear)
	assert.True(t, profile.GrossIncome.Equal(decimal.NewFromInt(95000)))
	assert.Equal(t, "FL", profile.State)
	assert.True(t, profile.IsSelfEmployed)
	assert.Equal(t, 46, profile.WeeksPerYear)
	require.NotNil(t, profile.PriorYearTax)
	assert.True(t, profile.PriorYearTax.Equal(decimal.NewFromInt(18000)))
	require.Len(t, profile.Offers, 1)
	require.Len(t, profile.Checklist, 2)
	assert.Equal(t, domain.CategoryResidence, profile.Checklist[0].Category)
}

func TestLoadProfile_Defaults(t *testing.T) {
	parser := NewInputParser()

	profile, err := parser.LoadProfile(writeTempYAML(t, `
tax_year: 2025
gross_income: -5000
deductions: -100
state: TX
`))
	require.NoError(t, err)

	assert.Equal(t, domain.FilingSingle, profile.FilingStatus, "filing status defaults to single")
	assert.Equal(t, 48, profile.WeeksPerYear, "weeks default")
	assert.True(t, profile.GrossIncome.IsZero(), "negative income clamps to zero")
	assert.True(t, profile.Deductions.IsZero(), "negative deductions clamp to zero")
}

func TestLoadProfile_Invalid(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name string
		yaml string
	}{
		{"bad filing status", "tax_year: 2025\nfiling_status: widowed\n"},
		{"tax year out of range", "tax_year: 1776\n"},
		{"checklist weight", `
tax_year: 2025
checklist:
  - id: lease
    category: residence
    weight: 0
    status: complete
`},
		{"checklist category", `
tax_year: 2025
checklist:
  - id: lease
    category: vibes
    weight: 1
    status: complete
`},
		{"checklist status", `
tax_year: 2025
checklist:
  - id: lease
    category: residence
    weight: 1
    status: done
`},
		{"offer without name", `
tax_year: 2025
offers:
  - weekly_taxable: 2000
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.LoadProfile(writeTempYAML(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadProfile_MissingFile(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadProfile("/nonexistent/profile.yaml")
	assert.Error(t, err)
}

func TestDefaultRegulatory(t *testing.T) {
	regulatory := DefaultRegulatory()
	parser := NewInputParser()
	require.NoError(t, parser.ValidateRegulatory(regulatory))

	assert.Equal(t, 2025, regulatory.Metadata.DataYear)
	assert.Len(t, regulatory.FederalTax.BracketsSingle, 7)
	assert.Len(t, regulatory.FederalTax.BracketsMFJ, 7)

	// SE split adds up to the statutory 15.3%.
	combined := regulatory.SelfEmployment.CombinedRate()
	assert.True(t, combined.Equal(decimal.NewFromFloat(0.153)), "got %s", combined)

	// The nine no-income-tax states are present and flagged.
	for _, code := range []string{"AK", "FL", "NV", "NH", "SD", "TN", "TX", "WA", "WY"} {
		rules, ok := regulatory.States[code]
		require.True(t, ok, "missing state %s", code)
		assert.True(t, rules.NoIncomeTax, "%s should be a no-income-tax state", code)
	}

	// Defaults feed the calculator without error and produce plausible tax.
	calc := calculation.NewObligationCalculator(regulatory)
	result := calc.Calculate(domain.TaxObligationInput{
		TaxYear:      2025,
		GrossIncome:  decimal.NewFromInt(100000),
		State:        "FL",
		FilingStatus: domain.FilingSingle,
	})
	assert.True(t, result.FederalTax.GreaterThan(decimal.Zero))
	assert.True(t, result.StateTax.IsZero())
}

func TestLoadRegulatory_OverridesDefaults(t *testing.T) {
	parser := NewInputParser()

	path := writeTempYAML(t, `
self_employment:
  social_security_rate: 0.124
  medicare_rate: 0.029
gsa:
  lodging: 150
  meals: 80
`)
	regulatory, err := parser.LoadRegulatory(path)
	require.NoError(t, err)

	assert.True(t, regulatory.GSA.Lodging.Equal(decimal.NewFromInt(150)))
	assert.True(t, regulatory.GSA.Meals.Equal(decimal.NewFromInt(80)))
	// Sections the file omits keep their defaults.
	assert.Len(t, regulatory.FederalTax.BracketsSingle, 7)
}

func TestLoadRegulatory_InvalidBrackets(t *testing.T) {
	parser := NewInputParser()

	path := writeTempYAML(t, `
federal_tax:
  brackets_single:
    - min: 0
      max: 10000
      rate: 1.5
`)
	_, err := parser.LoadRegulatory(path)
	assert.Error(t, err)
}
