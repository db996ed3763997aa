// Package envutil reads tuning values from environment variables.
package envutil

import (
	"fmt"
	"os"
	"strconv"

	"github.com/scrutinytools/devtools/pkg/console"
	"github.com/scrutinytools/devtools/pkg/logger"
)

// GetIntFromEnv reads an integer setting from the named environment
// variable. An unset or empty variable yields fallback silently; a value
// that fails to parse or lands outside [minValue, maxValue] yields fallback
// with a warning on stderr. A non-nil log records the value in use.
func GetIntFromEnv(name string, fallback, minValue, maxValue int, log *logger.Logger) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintln(os.Stderr, console.FormatWarningMessage(
			fmt.Sprintf("%s=%q is not a number, using default %d", name, raw, fallback)))
		return fallback
	}
	if val < minValue || val > maxValue {
		fmt.Fprintln(os.Stderr, console.FormatWarningMessage(
			fmt.Sprintf("%s=%d is outside %d-%d, using default %d", name, val, minValue, maxValue, fallback)))
		return fallback
	}

	if log != nil {
		log.Printf("Using %s=%d", name, val)
	}
	return val
}
