package config

import (
	"github.com/shopspring/decimal"
	"github.com/travelrn/taxtrack/internal/domain"
)

// bracketCeiling stands in for "unbounded" on the top bracket; the
// bracket walk ignores the top bracket's Max anyway.
const bracketCeiling = 999999999

func bracket(min, max int64, rate float64) domain.TaxBracket {
	return domain.TaxBracket{
		Min:  decimal.NewFromInt(min),
		Max:  decimal.NewFromInt(max),
		Rate: decimal.NewFromFloat(rate),
	}
}

// DefaultRegulatory returns the built-in 2025 regulatory data used when
// no regulatory.yaml is supplied.
func DefaultRegulatory() *domain.RegulatoryConfig {
	return &domain.RegulatoryConfig{
		Metadata: domain.RegulatoryMetadata{
			DataYear:    2025,
			LastUpdated: "2025-01-15",
			Description: "2025 federal brackets, SE tax split, state rates, CONUS per diem",
		},
		FederalTax: domain.FederalTaxRules{
			BracketsSingle: []domain.TaxBracket{
				bracket(0, 11925, 0.10),
				bracket(11925, 48475, 0.12),
				bracket(48475, 103350, 0.22),
				bracket(103350, 197300, 0.24),
				bracket(197300, 250525, 0.32),
				bracket(250525, 626350, 0.35),
				bracket(626350, bracketCeiling, 0.37),
			},
			BracketsMFJ: []domain.TaxBracket{
				bracket(0, 23850, 0.10),
				bracket(23850, 96950, 0.12),
				bracket(96950, 206700, 0.22),
				bracket(206700, 394600, 0.24),
				bracket(394600, 501050, 0.32),
				bracket(501050, 751600, 0.35),
				bracket(751600, bracketCeiling, 0.37),
			},
		},
		SelfEmployment: domain.SelfEmploymentRules{
			SocialSecurityRate: decimal.NewFromFloat(0.124),
			MedicareRate:       decimal.NewFromFloat(0.029),
		},
		States: defaultStates(),
		GSA: domain.GSARates{
			Lodging: decimal.NewFromInt(110),
			Meals:   decimal.NewFromInt(68),
		},
	}
}

func defaultStates() map[string]domain.StateRules {
	states := map[string]domain.StateRules{
		"AZ": {Rate: decimal.NewFromFloat(0.025)},
		"CO": {Rate: decimal.NewFromFloat(0.044)},
		"GA": {Rate: decimal.NewFromFloat(0.0539)},
		"IL": {Rate: decimal.NewFromFloat(0.0495)},
		"IN": {Rate: decimal.NewFromFloat(0.0305)},
		"KY": {Rate: decimal.NewFromFloat(0.04)},
		"MA": {Rate: decimal.NewFromFloat(0.05)},
		"MI": {Rate: decimal.NewFromFloat(0.0425)},
		"NC": {Rate: decimal.NewFromFloat(0.045)},
		"PA": {Rate: decimal.NewFromFloat(0.0307)},
		"UT": {Rate: decimal.NewFromFloat(0.0465)},
		"CA": {Brackets: []domain.TaxBracket{
			bracket(0, 10756, 0.01),
			bracket(10756, 25499, 0.02),
			bracket(25499, 40245, 0.04),
			bracket(40245, 55866, 0.06),
			bracket(55866, 70606, 0.08),
			bracket(70606, 360659, 0.093),
			bracket(360659, 432787, 0.103),
			bracket(432787, 721314, 0.113),
			bracket(721314, bracketCeiling, 0.123),
		}},
	}

	// States with no wage income tax, the common travel-nurse tax homes.
	for _, code := range []string{"AK", "FL", "NV", "NH", "SD", "TN", "TX", "WA", "WY"} {
		states[code] = domain.StateRules{NoIncomeTax: true}
	}
	return states
}
