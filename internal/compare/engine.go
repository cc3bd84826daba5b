package compare

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/travelrn/taxtrack/internal/domain"
)

// DefaultWeeksPerYear assumes a typical 48-week contract year when the
// caller does not say otherwise.
const DefaultWeeksPerYear = 48

var hundred = decimal.NewFromInt(100)

// Engine ranks competing job offers by projected take-home pay using a
// pair of flat blended rates. This is deliberately a simplification: real
// tax planning goes through the progressive obligation calculator; offer
// screening only needs relative ordering.
type Engine struct {
	FederalRate  decimal.Decimal
	StateRate    decimal.Decimal
	WeeksPerYear int
}

// NewEngine creates a comparison engine with the given blended rates.
// A non-positive weeks value falls back to DefaultWeeksPerYear.
func NewEngine(federalRate, stateRate decimal.Decimal, weeksPerYear int) *Engine {
	if weeksPerYear <= 0 {
		weeksPerYear = DefaultWeeksPerYear
	}
	return &Engine{
		FederalRate:  federalRate,
		StateRate:    stateRate,
		WeeksPerYear: weeksPerYear,
	}
}

// Compare projects every offer and returns them ranked descending by
// weekly take-home. Ties keep input order, so the first-listed offer wins
// the better rank; ranking is fully deterministic.
func (e *Engine) Compare(offers []domain.JobOffer) *ComparisonSet {
	results := make([]domain.OfferComparisonResult, len(offers))
	for i, offer := range offers {
		results[i] = e.project(offer)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].WeeklyTakeHome.GreaterThan(results[j].WeeklyTakeHome)
	})
	for i := range results {
		results[i].Rank = i + 1
	}

	return &ComparisonSet{
		FederalRate:  e.FederalRate,
		StateRate:    e.StateRate,
		WeeksPerYear: e.WeeksPerYear,
		Results:      results,
	}
}

// project computes one offer's take-home picture. Stipends are assumed
// untaxed; negative inputs are caller bugs and clamp to zero.
func (e *Engine) project(offer domain.JobOffer) domain.OfferComparisonResult {
	taxable := clampZero(offer.WeeklyTaxable)
	stipends := clampZero(offer.WeeklyStipends)
	hours := clampZero(offer.HoursPerWeek)
	weeks := decimal.NewFromInt(int64(e.WeeksPerYear))

	weeklyGross := taxable.Add(stipends)
	keepRate := decimal.NewFromInt(1).Sub(e.FederalRate).Sub(e.StateRate)
	weeklyTakeHome := taxable.Mul(keepRate).Add(stipends)

	result := domain.OfferComparisonResult{
		Offer:                offer,
		WeeklyGross:          weeklyGross,
		WeeklyTakeHome:       weeklyTakeHome,
		AnnualGross:          weeklyGross.Mul(weeks),
		AnnualTakeHome:       weeklyTakeHome.Mul(weeks),
		BlendedHourlyRate:    decimal.Zero,
		NonTaxablePercentage: decimal.Zero,
		EffectiveTaxRate:     decimal.Zero,
	}

	if hours.GreaterThan(decimal.Zero) {
		result.BlendedHourlyRate = weeklyGross.Div(hours)
	}
	if weeklyGross.GreaterThan(decimal.Zero) {
		result.NonTaxablePercentage = stipends.Div(weeklyGross).Mul(hundred)
	}
	if result.AnnualGross.GreaterThan(decimal.Zero) {
		taxed := result.AnnualGross.Sub(result.AnnualTakeHome)
		result.EffectiveTaxRate = taxed.Div(result.AnnualGross).Mul(hundred)
	}
	return result
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return d
}
