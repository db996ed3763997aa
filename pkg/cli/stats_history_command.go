package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/scrutinytools/devtools/pkg/console"
	"github.com/scrutinytools/devtools/pkg/stats"
)

// newStatsHistoryCommand creates the stats history command.
func newStatsHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [folder]",
		Short: "List saved line-count snapshots",
		Long: `List the snapshots recorded with stats --save, newest first.

Examples:
  devtools stats history
  devtools stats history --limit 5
  devtools stats history --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := "."
			if len(args) > 0 {
				folder = args[0]
			}
			jsonFlag, _ := cmd.Flags().GetBool("json")
			limit, _ := cmd.Flags().GetInt("limit")
			return RunStatsHistory(cmd, folder, jsonFlag, limit)
		},
	}

	addJSONFlag(cmd)
	cmd.Flags().Int("limit", 20, "Maximum number of snapshots to list")

	return cmd
}

// RunStatsHistory lists stored snapshots for folder.
func RunStatsHistory(cmd *cobra.Command, folder string, jsonOutput bool, limit int) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	history, err := stats.OpenHistory(cfg.Stats.Database)
	if err != nil {
		return err
	}
	defer history.Close()

	snapshots, err := history.List(cmd.Context(), folder, limit)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(snapshots))
	for _, s := range snapshots {
		rows = append(rows, []string{
			s.TakenAt.Local().Format("2006-01-02 15:04"),
			strconv.Itoa(s.Code),
			strconv.Itoa(s.Test),
			strconv.Itoa(s.Comment),
			strconv.Itoa(s.Blank),
		})
	}
	table := console.TableConfig{
		Headers: []string{"Taken", "Code", "Test", "Comment", "Blank"},
		Rows:    rows,
	}

	if jsonOutput {
		out, err := console.RenderTableAsJSON(table)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	if len(snapshots) == 0 {
		fmt.Fprintln(os.Stderr, console.FormatInfoMessage("No snapshots recorded yet"))
		return nil
	}
	fmt.Fprint(os.Stderr, console.RenderTable(table))
	return nil
}
