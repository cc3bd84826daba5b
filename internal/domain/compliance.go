package domain

import "time"

// ChecklistCategory groups tax-home checklist items by the kind of tie
// they document.
type ChecklistCategory string

const (
	CategoryResidence     ChecklistCategory = "residence"
	CategoryPresence      ChecklistCategory = "presence"
	CategoryTies          ChecklistCategory = "ties"
	CategoryFinancial     ChecklistCategory = "financial"
	CategoryDocumentation ChecklistCategory = "documentation"
)

// ChecklistStatus is the completion state of a single checklist item.
type ChecklistStatus string

const (
	ChecklistComplete      ChecklistStatus = "complete"
	ChecklistIncomplete    ChecklistStatus = "incomplete"
	ChecklistPartial       ChecklistStatus = "partial"
	ChecklistNotApplicable ChecklistStatus = "not_applicable"
)

// ComplianceChecklistItem is one weighted requirement toward maintaining
// a tax home.
type ComplianceChecklistItem struct {
	ID          string            `yaml:"id" json:"id"`
	Title       string            `yaml:"title" json:"title"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	Category    ChecklistCategory `yaml:"category" json:"category"`
	Weight      int               `yaml:"weight" json:"weight"`
	Status      ChecklistStatus   `yaml:"status" json:"status"`
}

// TaxHomeCompliance is the per-tax-year aggregate of checklist state and
// tax-home visit history. Scores and levels are always derived from it,
// never stored on it.
type TaxHomeCompliance struct {
	TaxYear          int                       `json:"taxYear"`
	DaysAtTaxHome    int                       `json:"daysAtTaxHome"`
	LastTaxHomeVisit *time.Time                `json:"lastTaxHomeVisit,omitempty"`
	ChecklistItems   []ComplianceChecklistItem `json:"checklistItems"`
}

// ComplianceLevel bands a 0-100 compliance score for display.
type ComplianceLevel string

const (
	LevelExcellent    ComplianceLevel = "excellent"
	LevelGood         ComplianceLevel = "good"
	LevelAtRisk       ComplianceLevel = "at_risk"
	LevelNonCompliant ComplianceLevel = "non_compliant"
	LevelUnknown      ComplianceLevel = "unknown"
)

// ComplianceLevelFromScore maps a score to its level. Scores outside
// [0,100] should not occur; they map to LevelUnknown rather than panicking.
func ComplianceLevelFromScore(score int) ComplianceLevel {
	switch {
	case score >= 90 && score <= 100:
		return LevelExcellent
	case score >= 70 && score < 90:
		return LevelGood
	case score >= 50 && score < 70:
		return LevelAtRisk
	case score >= 0 && score < 50:
		return LevelNonCompliant
	default:
		return LevelUnknown
	}
}
