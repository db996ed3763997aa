package cli

import (
	"github.com/spf13/cobra"

	"github.com/scrutinytools/devtools/pkg/config"
)

// addJSONFlag registers the --json output flag shared by listing commands.
func addJSONFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
}

// configPath resolves the persistent --config flag, defaulting to the
// standard file name.
func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.DefaultPath
	}
	return path
}

// loadConfig loads the file the --config flag points at. A missing file
// yields the defaults, so commands work in bare checkouts.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(configPath(cmd))
}

// verboseFlag reads the persistent --verbose flag.
func verboseFlag(cmd *cobra.Command) bool {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return verbose
}
