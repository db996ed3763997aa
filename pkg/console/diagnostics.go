package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scrutinytools/devtools/pkg/styles"
)

// ErrorPosition identifies a location in a source file.
type ErrorPosition struct {
	File   string
	Line   int
	Column int
}

// FileError is a diagnostic tied to a position in a configuration or spec
// file, rendered in the file:line:column style compilers use.
type FileError struct {
	Position ErrorPosition
	Type     string // "error" or "warning"
	Message  string
	Context  []string // source lines around the position, starting one line above it
}

// FormatError renders a file diagnostic with its position, severity and any
// surrounding source context.
func FormatError(e FileError) string {
	var b strings.Builder

	kind := e.Type
	if kind == "" {
		kind = "error"
	}
	severity := styles.Error.Render(kind + ":")
	if kind == "warning" {
		severity = styles.Warning.Render(kind + ":")
	}

	pos := fmt.Sprintf("%s:%d:%d:", ToRelativePath(e.Position.File), e.Position.Line, e.Position.Column)
	fmt.Fprintf(&b, "%s %s %s\n", styles.Bold.Render(pos), severity, e.Message)

	if len(e.Context) > 0 {
		start := e.Position.Line - 1
		if start < 1 {
			start = 1
		}
		width := len(strconv.Itoa(start + len(e.Context) - 1))
		for i, line := range e.Context {
			fmt.Fprintf(&b, "  %*d | %s\n", width, start+i, line)
		}
	}

	return b.String()
}
