// Package compliance scores tax-home compliance: a weighted checklist
// score and the 30-day return rule. All computations derive from the
// TaxHomeCompliance aggregate; nothing here is stored state.
package compliance

import (
	"math"
	"time"

	"github.com/travelrn/taxtrack/internal/domain"
)

// AtRiskWindowDays is the countdown threshold below which the 30-day
// rule is flagged as at risk.
const AtRiskWindowDays = 7

// returnWindowDays is the maximum gap between tax-home visits before the
// tax home is considered abandoned.
const returnWindowDays = 30

// Score computes the weighted checklist completion score, an integer in
// [0,100]. Only items marked complete contribute weight; partial and
// not-applicable items count toward the denominator but not the numerator.
// An empty checklist scores 0.
func Score(record domain.TaxHomeCompliance) int {
	var totalWeight, completeWeight int
	for _, item := range record.ChecklistItems {
		if item.Weight <= 0 {
			continue
		}
		totalWeight += item.Weight
		if item.Status == domain.ChecklistComplete {
			completeWeight += item.Weight
		}
	}
	if totalWeight == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completeWeight) / float64(totalWeight)))
}

// CompletionFraction is the normalized checklist completion in [0,1].
// This is the value progress-bar widths consume; Score is the 0-100
// integer shown on badges. The two must never be interchanged.
func CompletionFraction(record domain.TaxHomeCompliance) float64 {
	return float64(Score(record)) / 100
}

// Level bands the record's score for display.
func Level(record domain.TaxHomeCompliance) domain.ComplianceLevel {
	return domain.ComplianceLevelFromScore(Score(record))
}

// DaysUntilReturn returns the number of days left before the 30-day
// return rule is breached, clamped at zero. It returns nil when no visit
// has been recorded, or when the recorded visit is in the future - a
// future date is invalid input and must not produce a plausible countdown.
func DaysUntilReturn(record domain.TaxHomeCompliance, now time.Time) *int {
	if record.LastTaxHomeVisit == nil {
		return nil
	}
	since := daysSince(*record.LastTaxHomeVisit, now)
	if since < 0 {
		return nil
	}
	remaining := returnWindowDays - since
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}

// ThirtyDayRuleViolated reports whether the most recent visit is more
// than 30 days in the past. Exactly 30 days out is the last compliant
// day, not a violation.
func ThirtyDayRuleViolated(record domain.TaxHomeCompliance, now time.Time) bool {
	if record.LastTaxHomeVisit == nil {
		return false
	}
	since := daysSince(*record.LastTaxHomeVisit, now)
	return since > returnWindowDays
}

// ThirtyDayRuleAtRisk reports whether the countdown is inside the at-risk
// window but the rule is not yet violated.
func ThirtyDayRuleAtRisk(record domain.TaxHomeCompliance, now time.Time) bool {
	remaining := DaysUntilReturn(record, now)
	if remaining == nil {
		return false
	}
	return *remaining <= AtRiskWindowDays && !ThirtyDayRuleViolated(record, now)
}

// RecordVisit applies a tax-home visit: accumulates days (never
// decreasing the total) and moves the last-visit marker to the visit
// date.
func RecordVisit(record *domain.TaxHomeCompliance, visitDate time.Time, daysVisited int) {
	if daysVisited > 0 {
		record.DaysAtTaxHome += daysVisited
	}
	visit := visitDate
	record.LastTaxHomeVisit = &visit
}

// daysSince counts whole calendar days from the visit date to now,
// ignoring time of day. Negative when the visit is in the future.
func daysSince(visit, now time.Time) int {
	visitDay := time.Date(visit.Year(), visit.Month(), visit.Day(), 0, 0, 0, 0, time.UTC)
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(nowDay.Sub(visitDay).Hours() / 24)
}
