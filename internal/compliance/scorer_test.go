package compliance

import (
	"testing"
	"time"

	"github.com/travelrn/taxtrack/internal/domain"
)

func checklist(statuses ...domain.ChecklistStatus) []domain.ComplianceChecklistItem {
	items := make([]domain.ComplianceChecklistItem, len(statuses))
	for i, status := range statuses {
		items[i] = domain.ComplianceChecklistItem{
			ID:       "item",
			Category: domain.CategoryResidence,
			Weight:   1,
			Status:   status,
		}
	}
	return items
}

func TestScore_Weighted(t *testing.T) {
	record := domain.TaxHomeCompliance{
		TaxYear: 2025,
		ChecklistItems: []domain.ComplianceChecklistItem{
			{ID: "lease", Category: domain.CategoryResidence, Weight: 3, Status: domain.ChecklistComplete},
			{ID: "voter", Category: domain.CategoryTies, Weight: 1, Status: domain.ChecklistIncomplete},
			{ID: "bank", Category: domain.CategoryFinancial, Weight: 1, Status: domain.ChecklistPartial},
		},
	}

	// Only complete counts: 3 of 5 weight -> 60.
	if got := Score(record); got != 60 {
		t.Errorf("expected score 60, got %d", got)
	}
	if got := Level(record); got != domain.LevelAtRisk {
		t.Errorf("expected at_risk level, got %s", got)
	}
}

func TestScore_EmptyChecklist(t *testing.T) {
	record := domain.TaxHomeCompliance{TaxYear: 2025}
	if got := Score(record); got != 0 {
		t.Errorf("empty checklist should score 0, got %d", got)
	}
	if got := CompletionFraction(record); got != 0 {
		t.Errorf("empty checklist fraction should be 0, got %f", got)
	}
}

func TestScore_Bounds(t *testing.T) {
	record := domain.TaxHomeCompliance{
		ChecklistItems: checklist(
			domain.ChecklistComplete, domain.ChecklistComplete,
			domain.ChecklistIncomplete, domain.ChecklistNotApplicable,
		),
	}

	score := Score(record)
	if score < 0 || score > 100 {
		t.Fatalf("score out of bounds: %d", score)
	}
	fraction := CompletionFraction(record)
	if fraction < 0 || fraction > 1 {
		t.Fatalf("completion fraction out of bounds: %f", fraction)
	}
	// Score and fraction are the same value in different scales.
	if fraction != float64(score)/100 {
		t.Errorf("fraction %f disagrees with score %d", fraction, score)
	}
}

func TestCompletionFraction_AllComplete(t *testing.T) {
	record := domain.TaxHomeCompliance{
		ChecklistItems: checklist(
			domain.ChecklistComplete, domain.ChecklistComplete, domain.ChecklistComplete,
		),
	}

	if got := CompletionFraction(record); got != 1.0 {
		t.Errorf("all complete should yield exactly 1.0, got %f", got)
	}
	if got := Score(record); got != 100 {
		t.Errorf("all complete should score 100, got %d", got)
	}
}

func TestComplianceLevelFromScore(t *testing.T) {
	tests := []struct {
		score    int
		expected domain.ComplianceLevel
	}{
		{100, domain.LevelExcellent},
		{90, domain.LevelExcellent},
		{89, domain.LevelGood},
		{70, domain.LevelGood},
		{69, domain.LevelAtRisk},
		{50, domain.LevelAtRisk},
		{49, domain.LevelNonCompliant},
		{0, domain.LevelNonCompliant},
		{101, domain.LevelUnknown},
		{-1, domain.LevelUnknown},
	}

	for _, tt := range tests {
		if got := domain.ComplianceLevelFromScore(tt.score); got != tt.expected {
			t.Errorf("score %d: expected %s, got %s", tt.score, tt.expected, got)
		}
	}
}

func TestDaysUntilReturn(t *testing.T) {
	now := time.Date(2025, time.August, 31, 10, 0, 0, 0, time.UTC)

	visit := func(daysAgo int) *time.Time {
		v := now.AddDate(0, 0, -daysAgo)
		return &v
	}

	tests := []struct {
		name     string
		visit    *time.Time
		expected *int
	}{
		{"no visit recorded", nil, nil},
		{"future visit is invalid", visit(-5), nil},
		{"visit today", visit(0), intPtr(30)},
		{"visit 10 days ago", visit(10), intPtr(20)},
		{"visit 30 days ago", visit(30), intPtr(0)},
		{"visit 35 days ago clamps at zero", visit(35), intPtr(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := domain.TaxHomeCompliance{LastTaxHomeVisit: tt.visit}
			got := DaysUntilReturn(record, now)
			if (got == nil) != (tt.expected == nil) {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
			if got != nil && *got != *tt.expected {
				t.Errorf("expected %d days, got %d", *tt.expected, *got)
			}
		})
	}
}

func TestThirtyDayRule_ViolatedAndAtRisk(t *testing.T) {
	now := time.Date(2025, time.August, 31, 10, 0, 0, 0, time.UTC)

	record := func(daysAgo int) domain.TaxHomeCompliance {
		v := now.AddDate(0, 0, -daysAgo)
		return domain.TaxHomeCompliance{LastTaxHomeVisit: &v}
	}

	// Exactly day 30: countdown hits zero but the rule is not yet violated.
	if ThirtyDayRuleViolated(record(30), now) {
		t.Error("day 30 exactly should not be a violation")
	}
	if ThirtyDayRuleViolated(record(35), now) == false {
		t.Error("35 days out should be a violation")
	}
	if ThirtyDayRuleViolated(domain.TaxHomeCompliance{}, now) {
		t.Error("no recorded visit is not a violation")
	}

	// At-risk window: countdown <= 7 and not violated.
	if !ThirtyDayRuleAtRisk(record(25), now) {
		t.Error("5 days remaining should be at risk")
	}
	if ThirtyDayRuleAtRisk(record(10), now) {
		t.Error("20 days remaining should not be at risk")
	}
	if ThirtyDayRuleAtRisk(record(35), now) {
		t.Error("a violated record is past at-risk")
	}
}

func TestRecordVisit(t *testing.T) {
	record := domain.TaxHomeCompliance{TaxYear: 2025, DaysAtTaxHome: 10}
	visitDate := time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC)

	RecordVisit(&record, visitDate, 3)
	if record.DaysAtTaxHome != 13 {
		t.Errorf("expected 13 days, got %d", record.DaysAtTaxHome)
	}
	if record.LastTaxHomeVisit == nil || !record.LastTaxHomeVisit.Equal(visitDate) {
		t.Errorf("last visit not updated: %v", record.LastTaxHomeVisit)
	}

	// Negative day counts never decrease the total.
	RecordVisit(&record, visitDate.AddDate(0, 0, 7), -5)
	if record.DaysAtTaxHome != 13 {
		t.Errorf("days at tax home must never decrease, got %d", record.DaysAtTaxHome)
	}
}

func intPtr(n int) *int { return &n }
