package output

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelrn/taxtrack/internal/domain"
)

func sampleReport() *AnnualReport {
	profile := &domain.Profile{
		TaxYear:      2025,
		GrossIncome:  decimal.NewFromInt(90000),
		Deductions:   decimal.NewFromInt(15000),
		State:        "PA",
		FilingStatus: domain.FilingSingle,
	}
	due := time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC)
	payments := []domain.QuarterlyPayment{
		{TaxYear: 2025, Quarter: 1, DueDate: due, EstimatedAmount: decimal.NewFromInt(3000), PaidAmount: decimal.NewFromInt(3000), Paid: true},
		{TaxYear: 2025, Quarter: 2, DueDate: due.AddDate(0, 2, 0), EstimatedAmount: decimal.NewFromInt(3000)},
	}
	return &AnnualReport{
		Profile: profile,
		Result: domain.TaxObligationResult{
			TaxYear:    2025,
			FederalTax: decimal.NewFromInt(10000),
			StateTax:   decimal.NewFromInt(2000),
			TotalTax:   decimal.NewFromInt(12000),
			Source:     domain.SourceProgressive,
		},
		Payments: payments,
		Summary: domain.PaymentSummary{
			TaxYear:        2025,
			TotalEstimated: decimal.NewFromInt(6000),
			TotalPaid:      decimal.NewFromInt(3000),
			Remaining:      decimal.NewFromInt(3000),
			QuartersPaid:   1,
			Progress:       decimal.NewFromFloat(0.5),
		},
		GeneratedAt: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestGetFormatterByName(t *testing.T) {
	assert.Equal(t, "console", GetFormatterByName("console").Name())
	assert.Equal(t, "console", GetFormatterByName("").Name())
	assert.Equal(t, "json", GetFormatterByName("json").Name())
	assert.Equal(t, "csv", GetFormatterByName("csv").Name())
	assert.Nil(t, GetFormatterByName("xml"))
}

func TestSafeHarborAmount(t *testing.T) {
	assert.Nil(t, SafeHarborAmount(nil))

	prior := decimal.NewFromInt(10000)
	got := SafeHarborAmount(&prior)
	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.NewFromInt(11000)), "got %s", got)
}

func TestConsoleFormat(t *testing.T) {
	out, err := (&ConsoleFormatter{}).Format(sampleReport())
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "ANNUAL TAX OBLIGATION  2025")
	assert.Contains(t, text, "Federal Tax:         $10000.00")
	assert.Contains(t, text, "Taxable Income:      $75000.00")
	assert.Contains(t, text, "Q1")
	assert.Contains(t, text, "paid")
	assert.NotContains(t, text, "FLAT-RATE")
}

func TestConsoleFormatLabelsFallback(t *testing.T) {
	report := sampleReport()
	report.Result.Source = domain.SourceFlatFallback

	out, err := (&ConsoleFormatter{}).Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), "SIMPLIFIED FLAT-RATE ESTIMATE")
}

func TestConsoleFormatSafeHarbor(t *testing.T) {
	report := sampleReport()
	harbor := decimal.NewFromInt(13200)
	report.SafeHarbor = &harbor

	out, err := (&ConsoleFormatter{}).Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Safe Harbor Target:  $13200.00")
}

func TestJSONFormatRoundTrip(t *testing.T) {
	out, err := (&JSONFormatter{Pretty: true}).Format(sampleReport())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "progressive", decoded["result"].(map[string]any)["source"])
}

func TestCSVFormat(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sampleReport())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "quarter")
	assert.Contains(t, lines[1], "2025,1,2025-04-15,3000.00,3000.00,0.00")
	assert.Contains(t, lines[2], "upcoming")
}

func TestFormattersRejectNil(t *testing.T) {
	for _, f := range []Formatter{&ConsoleFormatter{}, &JSONFormatter{}, &CSVFormatter{}} {
		_, err := f.Format(nil)
		assert.Error(t, err, f.Name())
	}
}
