package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats a comparison set as CSV.
type CSVFormatter struct{}

// Format generates CSV output for the comparison set.
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Rank",
		"Offer",
		"Weekly Gross",
		"Weekly Take-Home",
		"Annual Gross",
		"Annual Take-Home",
		"Blended Hourly Rate",
		"Non-Taxable %",
		"Effective Tax Rate %",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, result := range compSet.Results {
		row := []string{
			strconv.Itoa(result.Rank),
			result.Offer.Name,
			result.WeeklyGross.StringFixed(2),
			result.WeeklyTakeHome.StringFixed(2),
			result.AnnualGross.StringFixed(2),
			result.AnnualTakeHome.StringFixed(2),
			result.BlendedHourlyRate.StringFixed(2),
			result.NonTaxablePercentage.StringFixed(2),
			result.EffectiveTaxRate.StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
