package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/scrutinytools/devtools/pkg/styles"
	"github.com/scrutinytools/devtools/pkg/tty"
)

// LayoutTitleBox renders a section title. On a terminal it draws a rounded
// box; otherwise it falls back to separator lines of the requested width.
func LayoutTitleBox(title string, width int) string {
	if tty.IsStderrTerminal() {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.ColorPurple).
			Padding(0, 1).
			Width(width).
			Render(title)
	}
	sep := strings.Repeat("=", width)
	return sep + "\n" + title + "\n" + sep
}

// LayoutInfoSection renders a "label: value" line with the label emphasized.
func LayoutInfoSection(label, value string) string {
	if tty.IsStderrTerminal() {
		return styles.Bold.Render(label+":") + " " + value
	}
	return label + ": " + value
}

// LayoutEmphasisBox renders content inside a colored box to draw attention
// to it. Non-terminal output gets the plain content.
func LayoutEmphasisBox(content string, color lipgloss.AdaptiveColor) string {
	if tty.IsStderrTerminal() {
		return lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(color).
			Padding(0, 1).
			Render(content)
	}
	return content
}

// LayoutJoinVertical stacks rendered sections top to bottom. Empty string
// sections produce blank spacer lines.
func LayoutJoinVertical(sections ...string) string {
	if len(sections) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
