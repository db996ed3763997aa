// Package logger provides namespace-scoped debug logging gated by the DEBUG
// environment variable, in the style of the npm debug package.
//
// Loggers are created per namespace (conventionally "package:file") and write
// to stderr only when the namespace matches a pattern in DEBUG. Patterns are
// comma-separated, support a trailing "*" wildcard, and a "-" prefix excludes
// a namespace even when another pattern enables it:
//
//	DEBUG=*                  all loggers
//	DEBUG=icons:*            one namespace tree
//	DEBUG=icons:*,stats:*    multiple trees
//	DEBUG=*,-stats:history   everything except one logger
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger writes debug lines for a single namespace.
type Logger struct {
	namespace string

	mu   sync.Mutex
	last time.Time
}

// New returns a logger for the given namespace. Creating a logger is cheap;
// enablement is evaluated against DEBUG on every call so package-level loggers
// created before the environment is final still behave correctly.
func New(namespace string) *Logger {
	return &Logger{namespace: namespace}
}

// Enabled reports whether the logger's namespace matches the DEBUG patterns.
func (l *Logger) Enabled() bool {
	return enabled(l.namespace, os.Getenv("DEBUG"))
}

// Print logs the arguments using fmt.Sprint formatting.
func (l *Logger) Print(args ...any) {
	if !l.Enabled() {
		return
	}
	l.emit(fmt.Sprint(args...))
}

// Printf logs a formatted message using fmt.Sprintf formatting.
func (l *Logger) Printf(format string, args ...any) {
	if !l.Enabled() {
		return
	}
	l.emit(fmt.Sprintf(format, args...))
}

// emit writes one line with the namespace prefix and the time elapsed since
// the previous line from this logger.
func (l *Logger) emit(msg string) {
	l.mu.Lock()
	now := time.Now()
	var elapsed time.Duration
	if !l.last.IsZero() {
		elapsed = now.Sub(l.last)
	}
	l.last = now
	l.mu.Unlock()

	fmt.Fprintf(os.Stderr, "%s %s +%s\n", l.namespace, msg, formatElapsed(elapsed))
}

// formatElapsed renders a duration in the largest single unit that keeps the
// value above one, so consecutive lines read as +12µs, +3ms, +1.2s.
func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
}

// enabled evaluates the DEBUG pattern list for a namespace. Exclusions win
// over inclusions regardless of order.
func enabled(namespace, debug string) bool {
	if debug == "" {
		return false
	}
	match := false
	for _, pattern := range strings.Split(debug, ",") {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if rest, negated := strings.CutPrefix(pattern, "-"); negated {
			if matchPattern(rest, namespace) {
				return false
			}
			continue
		}
		if matchPattern(pattern, namespace) {
			match = true
		}
	}
	return match
}

func matchPattern(pattern, namespace string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(namespace, prefix)
	}
	return pattern == namespace
}
