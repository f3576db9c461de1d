// Package tui holds the interactive terminal screens: the intake form that
// collects generation input and the review screen for editing a spec.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/specflow/internal/domain"
)

// Styles defines the visual styles for the TUI
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Header   lipgloss.Style
	Selected lipgloss.Style
	Item     lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Muted    lipgloss.Style
	Border   lipgloss.Style
	Help     lipgloss.Style

	High   lipgloss.Style
	Medium lipgloss.Style
	Low    lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")). // Purple
			MarginLeft(2).
			MarginTop(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			MarginLeft(2),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginLeft(2),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2),
		Item: lipgloss.NewStyle().
			PaddingLeft(4),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")), // Yellow
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			MarginLeft(2),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginLeft(2).
			MarginTop(1),
		High:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Medium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Low:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

// PriorityBadge renders p as a colored tag.
func (s Styles) PriorityBadge(p domain.Priority) string {
	label := "[" + string(p) + "]"
	switch p {
	case domain.PriorityHigh:
		return s.High.Render(label)
	case domain.PriorityMedium:
		return s.Medium.Render(label)
	case domain.PriorityLow:
		return s.Low.Render(label)
	default:
		return s.Muted.Render(label)
	}
}
