package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and advances the dashboard state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.err = nil
			return m, loadDataCmd(m.load)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		gaugeWidth := msg.Width - 20
		if gaugeWidth < 10 {
			gaugeWidth = 10
		}
		if gaugeWidth > 60 {
			gaugeWidth = 60
		}
		m.paymentGauge.Width = gaugeWidth
		m.complianceGauge.Width = gaugeWidth
		return m, nil

	case DataLoadedMsg:
		m.loading = false
		m.data = msg.Data
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}
