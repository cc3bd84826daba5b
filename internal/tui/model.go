// Package tui renders the interactive dashboard: annual obligation,
// quarterly payment progress, and tax-home compliance at a glance.
package tui

import (
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the dashboard application state.
type Model struct {
	load LoadFunc
	data *DashboardData

	paymentGauge    progress.Model
	complianceGauge progress.Model

	width  int
	height int

	loading bool
	err     error
}

// NewModel creates a dashboard model that loads its data via load.
func NewModel(load LoadFunc) Model {
	paymentGauge := progress.New(progress.WithDefaultGradient())
	complianceGauge := progress.New(progress.WithGradient("#d75f5f", "#5fd75f"))

	return Model{
		load:            load,
		paymentGauge:    paymentGauge,
		complianceGauge: complianceGauge,
		width:           80,
		height:          24,
		loading:         true,
	}
}

// Init kicks off the initial data load.
func (m Model) Init() tea.Cmd {
	return loadDataCmd(m.load)
}

func loadDataCmd(load LoadFunc) tea.Cmd {
	return func() tea.Msg {
		data, err := load()
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return DataLoadedMsg{Data: data}
	}
}
