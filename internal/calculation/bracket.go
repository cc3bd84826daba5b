package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/travelrn/taxtrack/internal/domain"
)

// BracketTax computes tax owed on taxableIncome using true marginal
// taxation: each bracket's rate applies only to the slice of income
// between its Min and Max. The final bracket is unbounded above, so
// income past the last threshold accrues at the top rate.
//
// Zero or negative income and an empty table both yield zero. This must
// never collapse to "whole income times the rate of the bracket it lands
// in" - that overstates tax at every boundary.
func BracketTax(brackets []domain.TaxBracket, taxableIncome decimal.Decimal) decimal.Decimal {
	if len(brackets) == 0 || taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var totalTax decimal.Decimal
	last := len(brackets) - 1
	for i, bracket := range brackets {
		if taxableIncome.LessThanOrEqual(bracket.Min) {
			break
		}
		upper := bracket.Max
		if i == last {
			// Top bracket has no ceiling.
			upper = taxableIncome
		}
		incomeInBracket := decimal.Min(taxableIncome, upper).Sub(bracket.Min)
		if incomeInBracket.GreaterThan(decimal.Zero) {
			totalTax = totalTax.Add(incomeInBracket.Mul(bracket.Rate))
		}
	}

	return totalTax
}

// ValidateBrackets checks the table invariants: thresholds strictly
// increasing, non-overlapping, rates in [0,1).
func ValidateBrackets(brackets []domain.TaxBracket) error {
	one := decimal.NewFromInt(1)
	for i, b := range brackets {
		if b.Rate.LessThan(decimal.Zero) || b.Rate.GreaterThanOrEqual(one) {
			return &BracketError{Index: i, Reason: "rate must be in [0,1)"}
		}
		if i < len(brackets)-1 && !b.Max.GreaterThan(b.Min) {
			return &BracketError{Index: i, Reason: "max must exceed min"}
		}
		if i > 0 && b.Min.LessThan(brackets[i-1].Max) {
			return &BracketError{Index: i, Reason: "brackets overlap"}
		}
	}
	return nil
}

// BracketError reports an invalid entry in a bracket table.
type BracketError struct {
	Index  int
	Reason string
}

func (e *BracketError) Error() string {
	return fmt.Sprintf("invalid tax bracket %d: %s", e.Index, e.Reason)
}
