package tui

import "github.com/charmbracelet/lipgloss"

// styles contains all lipgloss styles used by the TUI.
var styles = struct {
	// Entry screen
	Title  lipgloss.Style
	Prompt lipgloss.Style

	// Canvas elements
	User       lipgloss.Style
	Connection lipgloss.Style
	Link       lipgloss.Style
	Hull       lipgloss.Style
	Dragged    lipgloss.Style

	// Overlays
	Banner      lipgloss.Style
	PopupBorder lipgloss.Style
	PopupKey    lipgloss.Style
	Footer      lipgloss.Style
	Frozen      lipgloss.Style
	Error       lipgloss.Style
}{
	// Entry screen
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212")),

	Prompt: lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")),

	// Canvas elements
	User: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212")),

	Connection: lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")),

	Link: lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")),

	Hull: lipgloss.NewStyle().
		Foreground(lipgloss.Color("114")),

	Dragged: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("220")),

	// Overlays
	Banner: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")),

	PopupBorder: lipgloss.NewStyle().
		Foreground(lipgloss.Color("63")),

	PopupKey: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")),

	Footer: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	Frozen: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("45")),

	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")),
}
