package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/travelrn/taxtrack/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ConsoleFormatter renders the annual report as plain console text.
type ConsoleFormatter struct{}

func (cf *ConsoleFormatter) Name() string { return "console" }

// Format renders the obligation breakdown, safe-harbor target, and the
// quarterly payment schedule as a text report.
func (cf *ConsoleFormatter) Format(report *AnnualReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("nil report")
	}

	var sb strings.Builder
	rule := strings.Repeat("=", 64)
	thin := strings.Repeat("-", 64)

	sb.WriteString(rule + "\n")
	sb.WriteString(fmt.Sprintf("ANNUAL TAX OBLIGATION  %d\n", report.Result.TaxYear))
	sb.WriteString(rule + "\n")

	if report.Result.Source == domain.SourceFlatFallback {
		sb.WriteString("NOTE: SIMPLIFIED FLAT-RATE ESTIMATE (no bracket tables applied)\n")
		sb.WriteString(thin + "\n")
	}

	if report.Profile != nil {
		input := report.Profile.ObligationInput()
		sb.WriteString(fmt.Sprintf("Gross Income:        %s\n", money(input.GrossIncome)))
		sb.WriteString(fmt.Sprintf("Deductions:          %s\n", money(input.Deductions)))
		sb.WriteString(fmt.Sprintf("Taxable Income:      %s\n", money(input.TaxableIncome())))
		sb.WriteString(fmt.Sprintf("Filing Status:       %s   State: %s\n",
			input.FilingStatus, strings.ToUpper(input.State)))
		sb.WriteString(thin + "\n")
	}

	sb.WriteString(fmt.Sprintf("Federal Tax:         %s\n", money(report.Result.FederalTax)))
	sb.WriteString(fmt.Sprintf("State Tax:           %s\n", money(report.Result.StateTax)))
	if report.Result.SelfEmploymentTax.GreaterThan(decimal.Zero) {
		sb.WriteString(fmt.Sprintf("Self-Employment Tax: %s\n", money(report.Result.SelfEmploymentTax)))
		sb.WriteString(fmt.Sprintf("  Social Security:   %s\n", money(report.Result.SocialSecurityTax)))
		sb.WriteString(fmt.Sprintf("  Medicare:          %s\n", money(report.Result.MedicareTax)))
	}
	sb.WriteString(thin + "\n")
	sb.WriteString(fmt.Sprintf("TOTAL TAX:           %s\n", money(report.Result.TotalTax)))

	if report.Profile != nil {
		taxable := report.Profile.ObligationInput().TaxableIncome()
		if taxable.GreaterThan(decimal.Zero) {
			sb.WriteString(fmt.Sprintf("Effective Rate:      %s%%\n",
				report.Result.EffectiveRate(taxable).Mul(hundred).StringFixed(1)))
		}
	}

	if report.SafeHarbor != nil {
		sb.WriteString(thin + "\n")
		sb.WriteString(fmt.Sprintf("Safe Harbor Target:  %s (110%% of prior-year tax)\n",
			money(*report.SafeHarbor)))
	}

	if report.GSA != nil {
		sb.WriteString(thin + "\n")
		sb.WriteString("Per-Diem Check:      ")
		if report.GSA.IsCompliant {
			sb.WriteString("within GSA limits\n")
		} else {
			sb.WriteString("EXCEEDS GSA LIMITS\n")
			if !report.GSA.HousingWithinLimit {
				sb.WriteString(fmt.Sprintf("  Housing excess:    %s/day\n", money(report.GSA.HousingExcess)))
			}
			if !report.GSA.MealsWithinLimit {
				sb.WriteString(fmt.Sprintf("  Meals excess:      %s/day\n", money(report.GSA.MealsExcess)))
			}
		}
	}

	if len(report.Payments) > 0 {
		sb.WriteString("\nQUARTERLY ESTIMATED PAYMENTS\n")
		sb.WriteString(thin + "\n")
		sb.WriteString(fmt.Sprintf("%-3s %-12s %13s %13s %-9s\n",
			"Qtr", "Due Date", "Estimated", "Paid", "Status"))
		for _, payment := range report.Payments {
			sb.WriteString(fmt.Sprintf("Q%-2d %-12s %13s %13s %-9s\n",
				payment.Quarter,
				payment.DueDate.Format("2006-01-02"),
				money(payment.EstimatedAmount),
				money(payment.PaidAmount),
				payment.Status(report.GeneratedAt)))
		}
		sb.WriteString(thin + "\n")
		sb.WriteString(fmt.Sprintf("Paid %s of %s (%s%%), remaining %s\n",
			money(report.Summary.TotalPaid),
			money(report.Summary.TotalEstimated),
			report.Summary.Progress.Mul(hundred).StringFixed(0),
			money(report.Summary.Remaining)))
		if report.Summary.QuartersOverdue > 0 {
			sb.WriteString(fmt.Sprintf("WARNING: %d quarter(s) overdue\n", report.Summary.QuartersOverdue))
		}
	}

	sb.WriteString(rule + "\n")
	return []byte(sb.String()), nil
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
