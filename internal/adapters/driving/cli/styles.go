package cli

import "github.com/charmbracelet/lipgloss"

// CLI output styles. Lipgloss degrades to plain text when the output
// is not a terminal, so these are safe for piped output too.
var (
	styleHeading = lipgloss.NewStyle().Bold(true)
	styleSource  = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))
	styleScore   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
)
