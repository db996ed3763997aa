package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scrutinytools/devtools/pkg/console"
	"github.com/scrutinytools/devtools/pkg/logger"
	"github.com/scrutinytools/devtools/pkg/stats"
)

var statsLog = logger.New("cli:stats")

// NewStatsCommand creates the stats command with its history subcommand.
func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [folder]",
		Short: "Count code, test, comment, and blank lines per language",
		Long: `Count source lines in a git repository.

Files are listed with git ls-tree against HEAD, so only committed files are
counted. Each file is classified by language and its lines split into code,
comment, and blank; files matching the test patterns report their code lines
in the Test column. Files in no recognized language are skipped and reported.

Examples:
  devtools stats                  # Current repository
  devtools stats ../app           # Another checkout
  devtools stats --json           # Machine-readable summary
  devtools stats --save           # Also record a snapshot in the history database`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := "."
			if len(args) > 0 {
				folder = args[0]
			}
			jsonFlag, _ := cmd.Flags().GetBool("json")
			saveFlag, _ := cmd.Flags().GetBool("save")
			return RunStats(cmd, folder, jsonFlag, saveFlag)
		},
	}

	addJSONFlag(cmd)
	cmd.Flags().Bool("save", false, "Record this scan in the stats history database")
	cmd.AddCommand(newStatsHistoryCommand())

	return cmd
}

// RunStats scans folder and prints the per-language summary.
func RunStats(cmd *cobra.Command, folder string, jsonOutput, save bool) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	report, err := stats.Scan(folder, stats.ScanOptions{
		TestPatterns:    cfg.Stats.TestPatterns,
		DocPatterns:     cfg.Stats.DocPatterns,
		ExcludePatterns: cfg.Stats.ExcludePatterns,
	})
	if err != nil {
		return err
	}
	summaries := report.Summarize()
	statsLog.Printf("Scanned %d files in %s (%d skipped)", len(report.Files), folder, len(report.Skipped))

	if save {
		history, err := stats.OpenHistory(cfg.Stats.Database)
		if err != nil {
			return err
		}
		defer history.Close()
		id, err := history.Save(cmd.Context(), folder, summaries)
		if err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
		statsLog.Printf("Saved snapshot %d", id)
	}

	if jsonOutput {
		out, err := stats.RenderSummaryJSON(summaries)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	fmt.Fprint(os.Stderr, stats.RenderSummaryTable(summaries))
	if len(report.Skipped) > 0 {
		fmt.Fprintln(os.Stderr, console.FormatWarningMessage(
			fmt.Sprintf("Skipped %d file(s) with no recognized language", len(report.Skipped))))
		if verboseFlag(cmd) {
			for _, name := range report.Skipped {
				fmt.Fprintln(os.Stderr, console.FormatVerboseMessage("  "+name))
			}
		}
	}
	if save {
		fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Snapshot saved"))
	}
	return nil
}
