package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/scrutinytools/devtools/pkg/console"
	"github.com/scrutinytools/devtools/pkg/envutil"
	"github.com/scrutinytools/devtools/pkg/icons"
	"github.com/scrutinytools/devtools/pkg/logger"
)

var iconsDeployLog = logger.New("cli:icons_deploy")

const defaultWatchDebounceMS = 500

// newIconsDeployCommand creates the icons deploy command.
func newIconsDeployCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Regenerate every icon theme and replace the published assets",
		Long: `Deploy the themed icon sets.

The scratch directory is cleared, every configured theme is rendered into
<scratch>/<theme> by running this binary's own generate subcommand, and each
freshly rendered directory then replaces <dest>/<theme>. The pipeline stops
at the first failed generation or publish step.

With --watch the deploy re-runs whenever the spec files or source images
change, until interrupted.

Examples:
  devtools icons deploy
  devtools icons deploy --watch
  devtools icons deploy --config tools/devtools.yml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			watch, _ := cmd.Flags().GetBool("watch")
			return RunIconsDeploy(cmd, watch)
		},
	}

	cmd.Flags().Bool("watch", false, "Re-run the deploy when the spec directory changes")

	return cmd
}

// RunIconsDeploy runs the deploy pipeline, optionally staying resident to
// re-run it on spec changes.
func RunIconsDeploy(cmd *cobra.Command, watch bool) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	generator, err := icons.SelfGenerator(configPath(cmd), cfg.Icons.SpecDir)
	if err != nil {
		return err
	}
	deployer := &icons.Deployer{
		ScratchRoot: cfg.Icons.ScratchDir,
		DestRoot:    cfg.Icons.DestDir,
		Variants:    cfg.Icons.Variants,
		Generator:   generator,
		Verbose:     verboseFlag(cmd),
	}

	ctx := cmd.Context()
	if !watch {
		return deployer.Run(ctx)
	}

	console.ClearScreen()
	fmt.Fprintln(os.Stderr, console.LayoutJoinVertical(
		console.LayoutTitleBox("Icon deploy watch", 60),
		console.LayoutInfoSection("Spec directory", console.ToRelativePath(cfg.Icons.SpecDir)),
		console.LayoutInfoSection("Destination", console.ToRelativePath(cfg.Icons.DestDir)),
		console.LayoutInfoSection("Themes", strings.Join(cfg.Icons.Variants, ", ")),
		"",
	))

	// The watch loop must survive a broken intermediate state, so the
	// initial run's failure is reported rather than returned.
	if err := deployer.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
	}

	debounce := time.Duration(envutil.GetIntFromEnv(
		"DEVTOOLS_WATCH_DEBOUNCE_MS", defaultWatchDebounceMS, 50, 10000, iconsDeployLog)) * time.Millisecond
	err = icons.Watch(ctx, cfg.Icons.SpecDir, debounce, deployer.Run)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, console.FormatInfoMessage("Watch stopped"))
		return nil
	}
	return err
}
