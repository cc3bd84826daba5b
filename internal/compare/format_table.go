package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats a comparison set as a console table.
type TableFormatter struct{}

// Format generates the ranked offer table.
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("OFFER COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 92) + "\n")
	sb.WriteString(fmt.Sprintf("Assumed rates: federal %s%%, state %s%%; %d weeks/year\n",
		compSet.FederalRate.Mul(hundred).StringFixed(1),
		compSet.StateRate.Mul(hundred).StringFixed(1),
		compSet.WeeksPerYear))
	sb.WriteString("\n")

	nameWidth := 22
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-4s %-*s %*s %*s %*s %*s %*s\n",
		"Rank",
		nameWidth, "Offer",
		numWidth, "Weekly Gross",
		numWidth, "Take-Home/wk",
		numWidth, "Blended $/hr",
		numWidth, "Non-Tax %",
		numWidth, "Annual Net"))
	sb.WriteString(strings.Repeat("-", 92) + "\n")

	for _, result := range compSet.Results {
		sb.WriteString(fmt.Sprintf("%-4d %-*s %*s %*s %*s %*s %*s\n",
			result.Rank,
			nameWidth, tf.truncate(result.Offer.Name, nameWidth),
			numWidth, "$"+result.WeeklyGross.StringFixed(2),
			numWidth, "$"+result.WeeklyTakeHome.StringFixed(2),
			numWidth, "$"+result.BlendedHourlyRate.StringFixed(2),
			numWidth, result.NonTaxablePercentage.StringFixed(1)+"%",
			numWidth, "$"+result.AnnualTakeHome.StringFixed(0)))
	}
	sb.WriteString(strings.Repeat("=", 92) + "\n")

	if best := compSet.Best(); best != nil && len(compSet.Results) > 1 {
		runnerUp := compSet.Results[1]
		edge := best.WeeklyTakeHome.Sub(runnerUp.WeeklyTakeHome)
		if edge.GreaterThan(decimal.Zero) {
			sb.WriteString(fmt.Sprintf("\nBest offer: %s ($%s/week more take-home than the next)\n",
				best.Offer.Name, edge.StringFixed(2)))
		}
	}

	return sb.String()
}

func (tf *TableFormatter) truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
