// Package cli implements the devtools command surface. Each command is a
// thin cobra wrapper: flags are resolved here, the work happens in the
// domain packages, and human-facing output goes to stderr through the
// console package so stdout stays parseable.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/scrutinytools/devtools/pkg/config"
)

// NewRootCommand assembles the devtools command tree.
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "devtools",
		Short: "Developer tooling for themed icons, line counts, and license banners",
		Long: `devtools bundles the repository housekeeping commands used by the desktop
app checkout: rendering and publishing the themed icon sets, counting source
lines per language, and keeping license banners at the top of source files.

Configuration lives in devtools.yml. Every relative path in that file is
resolved against the file's own directory, so commands behave the same from
any working directory.

Examples:
  devtools icons deploy              # Regenerate and publish every icon theme
  devtools icons deploy --watch      # Keep republishing as sources change
  devtools stats --json              # Line counts for the current repository
  devtools banner write              # Rewrite license headers`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the devtools.yml config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewIconsCommand())
	rootCmd.AddCommand(NewStatsCommand())
	rootCmd.AddCommand(NewBannerCommand())
	rootCmd.AddCommand(NewVersionCommand(version))

	return rootCmd
}
