// Package tui implements the interactive AuditLens dashboard.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	api "github.com/auditlens/auditlens/api/v1alpha1"
)

var (
	colorPrimary = lipgloss.Color("#4db6ac")
	colorMuted   = lipgloss.Color("#6c7a89")
	colorBorder  = lipgloss.Color("#2a3850")
	colorError   = lipgloss.Color("#e53935")
	colorWarn    = lipgloss.Color("#ffc107")
	colorOK      = lipgloss.Color("#8bc34a")
)

// Styles holds every lipgloss style the dashboard renders with.
type Styles struct {
	App    lipgloss.Style
	Header lipgloss.Style
	Footer lipgloss.Style

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style

	Panel    lipgloss.Style
	Selected lipgloss.Style
	Spinner  lipgloss.Style
}

// DefaultStyles returns the dashboard's standard look.
func DefaultStyles() Styles {
	return Styles{
		App:    lipgloss.NewStyle().Padding(1, 2),
		Header: lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Footer: lipgloss.NewStyle().Foreground(colorMuted),

		Title:    lipgloss.NewStyle().Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(colorPrimary),
		Muted:    lipgloss.NewStyle().Foreground(colorMuted),

		Success: lipgloss.NewStyle().Foreground(colorOK),
		Error:   lipgloss.NewStyle().Foreground(colorError).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(colorWarn),

		Panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1),
		Selected: lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		Spinner:  lipgloss.NewStyle().Foreground(colorPrimary),
	}
}

// SeverityStyle maps a severity to its display style.
func (s Styles) SeverityStyle(severity api.Severity) lipgloss.Style {
	switch severity {
	case api.SeverityHigh:
		return s.Error
	case api.SeverityMedium:
		return s.Warning
	case api.SeverityLow:
		return s.Success
	default:
		return s.Muted
	}
}
