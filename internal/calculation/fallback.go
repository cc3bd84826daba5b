package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/travelrn/taxtrack/internal/domain"
)

// Default blended rates for the simplified estimate.
var (
	DefaultFlatFederalRate = decimal.NewFromFloat(0.22)
	DefaultFlatStateRate   = decimal.NewFromFloat(0.05)
)

// FlatRateEstimator is the simplified fallback used when the progressive
// calculator cannot be constructed (e.g. regulatory data failed to load).
// Its results carry SourceFlatFallback so they can never be mistaken for
// the canonical progressive calculation.
type FlatRateEstimator struct {
	FederalRate    decimal.Decimal
	StateRate      decimal.Decimal
	SelfEmployment domain.SelfEmploymentRules
}

// NewFlatRateEstimator creates an estimator with the default blended
// rates and the statutory self-employment split.
func NewFlatRateEstimator() *FlatRateEstimator {
	return &FlatRateEstimator{
		FederalRate: DefaultFlatFederalRate,
		StateRate:   DefaultFlatStateRate,
		SelfEmployment: domain.SelfEmploymentRules{
			SocialSecurityRate: decimal.NewFromFloat(0.124),
			MedicareRate:       decimal.NewFromFloat(0.029),
		},
	}
}

// Estimate applies the flat rates to taxable income. State tax still
// honors self-declared no-income-tax by accepting a zero StateRate from
// the caller; the estimator itself has no state table.
func (fe *FlatRateEstimator) Estimate(input domain.TaxObligationInput) domain.TaxObligationResult {
	taxable := input.TaxableIncome()

	federal := taxable.Mul(fe.FederalRate).Round(2)
	state := taxable.Mul(fe.StateRate).Round(2)

	var socialSecurity, medicare decimal.Decimal
	if input.IsSelfEmployed {
		socialSecurity = taxable.Mul(fe.SelfEmployment.SocialSecurityRate).Round(2)
		medicare = taxable.Mul(fe.SelfEmployment.MedicareRate).Round(2)
	}
	selfEmployment := socialSecurity.Add(medicare)

	return domain.TaxObligationResult{
		TaxYear:           input.TaxYear,
		FederalTax:        federal,
		StateTax:          state,
		SelfEmploymentTax: selfEmployment,
		SocialSecurityTax: socialSecurity,
		MedicareTax:       medicare,
		TotalTax:          federal.Add(state).Add(selfEmployment),
		Source:            domain.SourceFlatFallback,
	}
}
