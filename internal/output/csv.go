package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// CSVFormatter emits the quarterly schedule as CSV, one row per quarter,
// for spreadsheet import.
type CSVFormatter struct{}

func (cf *CSVFormatter) Name() string { return "csv" }

func (cf *CSVFormatter) Format(report *AnnualReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("nil report")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"tax_year", "quarter", "due_date", "estimated", "paid", "remaining", "federal_portion", "state_portion", "status"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, payment := range report.Payments {
		row := []string{
			strconv.Itoa(payment.TaxYear),
			strconv.Itoa(payment.Quarter),
			payment.DueDate.Format("2006-01-02"),
			payment.EstimatedAmount.StringFixed(2),
			payment.PaidAmount.StringFixed(2),
			payment.RemainingAmount().StringFixed(2),
			payment.FederalPortion.StringFixed(2),
			payment.StatePortion.StringFixed(2),
			string(payment.Status(report.GeneratedAt)),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
