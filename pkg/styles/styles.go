// Package styles defines the shared lipgloss palette and text styles used by
// console output. Colors are adaptive so output stays readable on both light
// and dark terminals.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	ColorError   = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F87"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#5FD787"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#5FD7FF"}
	ColorPurple  = lipgloss.AdaptiveColor{Light: "#8700AF", Dark: "#AF87FF"}
)

var (
	Error   = lipgloss.NewStyle().Foreground(ColorError)
	Warning = lipgloss.NewStyle().Foreground(ColorWarning)
	Success = lipgloss.NewStyle().Foreground(ColorSuccess)
	Info    = lipgloss.NewStyle().Foreground(ColorInfo)
	Command = lipgloss.NewStyle().Foreground(ColorPurple).Bold(true)
	Dim     = lipgloss.NewStyle().Faint(true)
	Bold    = lipgloss.NewStyle().Bold(true)
)
