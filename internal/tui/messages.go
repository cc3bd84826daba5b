package tui

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/travelrn/taxtrack/internal/domain"
)

// DashboardData is everything the dashboard renders, assembled by the
// caller so the TUI stays decoupled from storage and calculation.
type DashboardData struct {
	TaxYear int

	Result   domain.TaxObligationResult
	Payments []domain.QuarterlyPayment
	Summary  domain.PaymentSummary

	ComplianceScore int
	ComplianceLevel domain.ComplianceLevel
	// DaysUntilReturn is the tax-home visit countdown, nil when no visit
	// has been recorded.
	DaysUntilReturn *int
	RuleViolated    bool

	GSA *domain.GSAComplianceResult

	SafeHarbor *decimal.Decimal
	Now        time.Time
}

// LoadFunc assembles dashboard data; it runs inside a tea.Cmd so slow
// loads never block the event loop.
type LoadFunc func() (*DashboardData, error)

// DataLoadedMsg carries a freshly loaded dashboard snapshot.
type DataLoadedMsg struct {
	Data *DashboardData
}

// ErrorMsg reports a load failure.
type ErrorMsg struct {
	Err error
}
