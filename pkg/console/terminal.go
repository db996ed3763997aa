package console

import (
	"fmt"
	"os"

	"github.com/scrutinytools/devtools/pkg/tty"
)

// ClearScreen clears the terminal and homes the cursor. It is a no-op when
// stdout is not a terminal.
func ClearScreen() {
	if !tty.IsStdoutTerminal() {
		return
	}
	fmt.Fprint(os.Stdout, "\x1b[2J\x1b[H")
}

// ClearLine erases the current line on stderr and returns the cursor to the
// start of it. It is a no-op when stderr is not a terminal.
func ClearLine() {
	if !tty.IsStderrTerminal() {
		return
	}
	fmt.Fprint(os.Stderr, "\r\x1b[2K")
}
