package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/travelrn/taxtrack/internal/domain"
)

// View renders the dashboard.
func (m Model) View() string {
	if m.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" + m.statusBar()
	}
	if m.loading || m.data == nil {
		return TitleStyle.Render("TaxTrack") + "\n\n  Loading...\n"
	}

	sections := []string{
		TitleStyle.Render(fmt.Sprintf("TaxTrack  %d", m.data.TaxYear)),
		m.obligationPanel(),
		m.paymentsPanel(),
		m.compliancePanel(),
		m.statusBar(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) obligationPanel() string {
	var sb strings.Builder
	sb.WriteString(PanelTitleStyle.Render("Annual Obligation"))
	sb.WriteString("\n\n")

	result := m.data.Result
	sb.WriteString(metricLine("Federal", result.FederalTax))
	sb.WriteString(metricLine("State", result.StateTax))
	if result.SelfEmploymentTax.GreaterThan(decimal.Zero) {
		sb.WriteString(metricLine("Self-Employment", result.SelfEmploymentTax))
	}
	sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-16s", "Total")))
	sb.WriteString(ValueStyle.Render("$" + result.TotalTax.StringFixed(2)))

	if result.Source == domain.SourceFlatFallback {
		sb.WriteString("\n")
		sb.WriteString(WarnStyle.Render("simplified flat-rate estimate"))
	}
	if m.data.SafeHarbor != nil {
		sb.WriteString("\n")
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-16s", "Safe harbor")))
		sb.WriteString(ValueStyle.Render("$" + m.data.SafeHarbor.StringFixed(2)))
	}

	return PanelStyle.Render(sb.String())
}

func (m Model) paymentsPanel() string {
	var sb strings.Builder
	sb.WriteString(PanelTitleStyle.Render("Quarterly Payments"))
	sb.WriteString("\n\n")

	for _, payment := range m.data.Payments {
		status := payment.Status(m.data.Now)
		sb.WriteString(fmt.Sprintf("Q%d  %s  %10s  %s\n",
			payment.Quarter,
			payment.DueDate.Format("Jan 02"),
			"$"+payment.EstimatedAmount.StringFixed(2),
			statusStyle(status).Render(string(status))))
	}

	sb.WriteString("\n")
	sb.WriteString(m.paymentGauge.ViewAs(m.data.Summary.Progress.InexactFloat64()))
	sb.WriteString(fmt.Sprintf("\n%s paid of %s",
		"$"+m.data.Summary.TotalPaid.StringFixed(2),
		"$"+m.data.Summary.TotalEstimated.StringFixed(2)))
	if m.data.Summary.QuartersOverdue > 0 {
		sb.WriteString("  ")
		sb.WriteString(BadStyle.Render(fmt.Sprintf("%d overdue", m.data.Summary.QuartersOverdue)))
	}

	return PanelStyle.Render(sb.String())
}

func (m Model) compliancePanel() string {
	var sb strings.Builder
	sb.WriteString(PanelTitleStyle.Render("Tax Home Compliance"))
	sb.WriteString("\n\n")

	sb.WriteString(m.complianceGauge.ViewAs(float64(m.data.ComplianceScore) / 100))
	sb.WriteString(fmt.Sprintf("\nScore %d/100  ", m.data.ComplianceScore))
	sb.WriteString(levelStyle(m.data.ComplianceLevel).Render(string(m.data.ComplianceLevel)))
	sb.WriteString("\n\n")

	switch {
	case m.data.RuleViolated:
		sb.WriteString(BadStyle.Render("30-DAY RULE VIOLATED: return to tax home"))
	case m.data.DaysUntilReturn == nil:
		sb.WriteString(LabelStyle.Render("No tax-home visit recorded"))
	case *m.data.DaysUntilReturn <= 7:
		sb.WriteString(WarnStyle.Render(fmt.Sprintf("Return within %d day(s)", *m.data.DaysUntilReturn)))
	default:
		sb.WriteString(fmt.Sprintf("Next required visit in %d day(s)", *m.data.DaysUntilReturn))
	}

	if m.data.GSA != nil && !m.data.GSA.IsCompliant {
		sb.WriteString("\n")
		sb.WriteString(BadStyle.Render("Stipends exceed GSA per-diem limits"))
	}

	return PanelStyle.Render(sb.String())
}

func (m Model) statusBar() string {
	keys := []string{
		HelpKeyStyle.Render("r") + StatusBarStyle.Render(" reload"),
		HelpKeyStyle.Render("q") + StatusBarStyle.Render(" quit"),
	}
	return " " + strings.Join(keys, "   ")
}

func metricLine(label string, amount decimal.Decimal) string {
	return LabelStyle.Render(fmt.Sprintf("%-16s", label)) +
		"$" + amount.StringFixed(2) + "\n"
}

func statusStyle(status domain.PaymentStatus) lipgloss.Style {
	switch status {
	case domain.StatusPaid:
		return GoodStyle
	case domain.StatusOverdue:
		return BadStyle
	case domain.StatusDueSoon:
		return WarnStyle
	default:
		return LabelStyle
	}
}

func levelStyle(level domain.ComplianceLevel) lipgloss.Style {
	switch level {
	case domain.LevelExcellent, domain.LevelGood:
		return GoodStyle
	case domain.LevelAtRisk:
		return WarnStyle
	case domain.LevelNonCompliant:
		return BadStyle
	default:
		return LabelStyle
	}
}
