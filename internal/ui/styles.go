package ui

import "github.com/charmbracelet/lipgloss"

// Styles contains all the style definitions for the finder
type Styles struct {
	Title      lipgloss.Style
	Input      lipgloss.Style
	Button     lipgloss.Style
	ButtonBusy lipgloss.Style
	Error      lipgloss.Style
	Card       lipgloss.Style
	CardTitle  lipgloss.Style
	CardBody   lipgloss.Style
	Help       lipgloss.Style
	Main       lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("236")).
			Background(lipgloss.Color("151")).
			Padding(0, 2).
			MarginBottom(1),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("250")).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("30")). // teal
			Padding(0, 3).
			MarginTop(1),
		ButtonBusy: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Background(lipgloss.Color("240")).
			Padding(0, 3).
			MarginTop(1),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("203")).MarginTop(1), // red
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("109")).
			Padding(0, 1).
			MarginTop(1).
			Width(44),
		CardTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("236")),
		CardBody:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:      lipgloss.NewStyle().Faint(true).MarginTop(1),
		Main:      lipgloss.NewStyle().Padding(1, 2),
	}
}
