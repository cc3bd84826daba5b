// Package output renders annual tax reports in console, JSON, and CSV
// form. Formatters are looked up by name so the CLI can pass --format
// straight through.
package output

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/travelrn/taxtrack/internal/domain"
)

// safeHarborFactor is the IRS 110%-of-prior-year rule for higher earners:
// paying this much of last year's tax avoids an underpayment penalty
// regardless of the current year's final bill.
var safeHarborFactor = decimal.NewFromFloat(1.10)

// AnnualReport bundles everything the formatters render for one tax year.
type AnnualReport struct {
	Profile  *domain.Profile            `json:"profile"`
	Result   domain.TaxObligationResult `json:"result"`
	Payments []domain.QuarterlyPayment  `json:"payments,omitempty"`
	Summary  domain.PaymentSummary      `json:"summary"`
	GSA      *domain.GSAComplianceResult `json:"gsa,omitempty"`

	// SafeHarbor is 110% of prior-year tax, present only when the
	// profile supplies a prior-year figure.
	SafeHarbor *decimal.Decimal `json:"safeHarbor,omitempty"`

	// GeneratedAt anchors derived payment statuses.
	GeneratedAt time.Time `json:"generatedAt"`
}

// SafeHarborAmount computes the 110% safe-harbor figure from prior-year
// tax, nil in, nil out.
func SafeHarborAmount(priorYearTax *decimal.Decimal) *decimal.Decimal {
	if priorYearTax == nil {
		return nil
	}
	amount := priorYearTax.Mul(safeHarborFactor).Round(2)
	return &amount
}

// Formatter renders an annual report in one output format.
type Formatter interface {
	Name() string
	Format(report *AnnualReport) ([]byte, error)
}

// GetFormatterByName returns the formatter for a --format value, nil for
// unsupported names.
func GetFormatterByName(name string) Formatter {
	switch name {
	case "console", "":
		return &ConsoleFormatter{}
	case "json":
		return &JSONFormatter{Pretty: true}
	case "csv":
		return &CSVFormatter{}
	default:
		return nil
	}
}
