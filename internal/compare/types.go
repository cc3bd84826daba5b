package compare

import (
	"github.com/shopspring/decimal"
	"github.com/travelrn/taxtrack/internal/domain"
)

// ComparisonSet is a ranked collection of offer projections plus the
// assumptions they were computed under.
type ComparisonSet struct {
	FederalRate  decimal.Decimal                `json:"federalRate"`
	StateRate    decimal.Decimal                `json:"stateRate"`
	WeeksPerYear int                            `json:"weeksPerYear"`
	Results      []domain.OfferComparisonResult `json:"results"`
}

// Best returns the top-ranked result, nil when the set is empty.
func (cs *ComparisonSet) Best() *domain.OfferComparisonResult {
	for i := range cs.Results {
		if cs.Results[i].Rank == 1 {
			return &cs.Results[i]
		}
	}
	return nil
}
