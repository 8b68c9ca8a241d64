package commands

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	badStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// signed renders money green when positive and red when negative.
func signed(d decimal.Decimal) string {
	switch {
	case d.IsPositive():
		return goodStyle.Render(money(d))
	case d.IsNegative():
		return badStyle.Render(money(d))
	}
	return money(d)
}

// percent renders a change; for expenses a rise is bad, so invert.
func percent(v float64, invert bool) string {
	s := lipgloss.NewStyle()
	up := v > 0
	if invert {
		up = !up
	}
	switch {
	case v == 0:
	case up:
		s = goodStyle
	default:
		s = badStyle
	}
	return s.Render(formatPercent(v))
}
