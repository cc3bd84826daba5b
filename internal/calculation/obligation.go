package calculation

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/travelrn/taxtrack/internal/domain"
)

// ObligationCalculator combines federal, state, and self-employment
// schedules into a single annual obligation. It is pure: no I/O, no
// shared mutable state, safe to call from any single goroutine.
type ObligationCalculator struct {
	Regulatory *domain.RegulatoryConfig
	Logger     Logger
}

// NewObligationCalculator creates a calculator over the given regulatory
// data.
func NewObligationCalculator(regulatory *domain.RegulatoryConfig) *ObligationCalculator {
	return &ObligationCalculator{
		Regulatory: regulatory,
		Logger:     NopLogger{},
	}
}

// SetLogger installs a logger; nil restores the no-op logger.
func (oc *ObligationCalculator) SetLogger(logger Logger) {
	if logger == nil {
		oc.Logger = NopLogger{}
		return
	}
	oc.Logger = logger
}

// Calculate computes the total annual tax for the input. Components are
// rounded to cents independently and TotalTax is their exact sum, so the
// quarterly scheduler can apportion without rounding leakage.
func (oc *ObligationCalculator) Calculate(input domain.TaxObligationInput) domain.TaxObligationResult {
	taxable := input.TaxableIncome()

	federal := BracketTax(oc.Regulatory.FederalTax.BracketsFor(input.FilingStatus), taxable).Round(2)
	state := oc.stateTax(input.State, taxable).Round(2)

	var socialSecurity, medicare decimal.Decimal
	if input.IsSelfEmployed {
		se := oc.Regulatory.SelfEmployment
		socialSecurity = taxable.Mul(se.SocialSecurityRate).Round(2)
		medicare = taxable.Mul(se.MedicareRate).Round(2)
	}
	selfEmployment := socialSecurity.Add(medicare)

	total := federal.Add(state).Add(selfEmployment)
	oc.Logger.Debugf("obligation %d: taxable=%s federal=%s state=%s se=%s total=%s",
		input.TaxYear, taxable, federal, state, selfEmployment, total)

	return domain.TaxObligationResult{
		TaxYear:           input.TaxYear,
		FederalTax:        federal,
		StateTax:          state,
		SelfEmploymentTax: selfEmployment,
		SocialSecurityTax: socialSecurity,
		MedicareTax:       medicare,
		TotalTax:          total,
		Source:            domain.SourceProgressive,
	}
}

// stateTax resolves one state's tax. Unknown states and no-income-tax
// states short-circuit to zero; a bracket table takes precedence over a
// flat rate.
func (oc *ObligationCalculator) stateTax(state string, taxable decimal.Decimal) decimal.Decimal {
	rules, ok := oc.Regulatory.States[strings.ToUpper(strings.TrimSpace(state))]
	if !ok || rules.NoIncomeTax {
		return decimal.Zero
	}
	if len(rules.Brackets) > 0 {
		return BracketTax(rules.Brackets, taxable)
	}
	if taxable.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return taxable.Mul(rules.Rate)
}
