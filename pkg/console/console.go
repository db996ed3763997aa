// Package console formats user-facing CLI output. All human-readable
// messages are written to stderr by callers; these helpers only produce the
// styled strings. Styling degrades to plain text when the stream is not a
// terminal.
package console

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scrutinytools/devtools/pkg/styles"
)

// FormatInfoMessage formats an informational message with an info icon.
func FormatInfoMessage(message string) string {
	return styles.Info.Render("ℹ") + " " + message
}

// FormatSuccessMessage formats a success message with a checkmark.
func FormatSuccessMessage(message string) string {
	return styles.Success.Render("✓") + " " + message
}

// FormatWarningMessage formats a warning message with a warning icon.
func FormatWarningMessage(message string) string {
	return styles.Warning.Render("⚠") + " " + message
}

// FormatErrorMessage formats an error message with a cross icon.
func FormatErrorMessage(message string) string {
	return styles.Error.Render("✗") + " " + message
}

// FormatPromptMessage formats a message that precedes interactive input.
func FormatPromptMessage(message string) string {
	return styles.Info.Render("?") + " " + message
}

// FormatCommandMessage formats a shell command shown to the user.
func FormatCommandMessage(command string) string {
	return styles.Command.Render(command)
}

// FormatVerboseMessage formats a low-importance detail line.
func FormatVerboseMessage(message string) string {
	return styles.Dim.Render(message)
}

// FormatLocationMessage formats a message that points at a filesystem
// location, such as where output was written.
func FormatLocationMessage(message string) string {
	return "📁 " + message
}

// FormatErrorWithSuggestions formats an error followed by a bulleted list of
// recovery suggestions. The suggestions section is omitted when empty.
func FormatErrorWithSuggestions(message string, suggestions []string) string {
	var b strings.Builder
	b.WriteString(FormatErrorMessage(message))
	if len(suggestions) > 0 {
		b.WriteString("\n\nSuggestions:\n")
		for _, s := range suggestions {
			fmt.Fprintf(&b, "  • %s\n", s)
		}
	}
	return b.String()
}

// FormatFileSize renders a byte count in a human-readable unit.
func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

// ToRelativePath converts an absolute path to one relative to the working
// directory. Relative paths and paths that cannot be converted are returned
// unchanged.
func ToRelativePath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}
	return rel
}

// IsAccessibleMode reports whether interactive prompts should use the
// accessible, screen-reader friendly rendering.
func IsAccessibleMode() bool {
	return os.Getenv("ACCESSIBLE") != ""
}
