package cli

import (
	"github.com/spf13/cobra"
)

// NewIconsCommand groups the icon pipeline commands.
func NewIconsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "icons",
		Short: "Render and publish the themed icon sets",
		Long: `Work with the themed icon pipeline.

The generate subcommand renders one theme's icon set from the spec files in
the graphics directory. The deploy subcommand regenerates every theme and
replaces the published assets with the fresh output.`,
	}

	cmd.AddCommand(newIconsGenerateCommand())
	cmd.AddCommand(newIconsDeployCommand())

	return cmd
}
