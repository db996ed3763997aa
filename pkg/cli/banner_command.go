package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/scrutinytools/devtools/pkg/banner"
	"github.com/scrutinytools/devtools/pkg/config"
	"github.com/scrutinytools/devtools/pkg/console"
	"github.com/scrutinytools/devtools/pkg/logger"
	"github.com/scrutinytools/devtools/pkg/styles"
	"github.com/scrutinytools/devtools/pkg/tty"
)

var bannerCmdLog = logger.New("cli:banner")

// NewBannerCommand creates the banner command group.
func NewBannerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "banner",
		Short: "Manage license banner headers in source files",
		Long: `Manage the license banner rendered at the top of tracked source files.

The banner config (.codebanner.json) records the project fields and the
files carrying a header. init creates or resets the config, scan finds
candidate files by glob pattern, and write rewrites the header block in
every tracked file.`,
	}

	cmd.PersistentFlags().String("folder", "", "Base folder holding the banner config (default from devtools.yml)")
	cmd.PersistentFlags().String("config-file", "", "Banner config file name inside the base folder")

	cmd.AddCommand(newBannerInitCommand())
	cmd.AddCommand(newBannerScanCommand())
	cmd.AddCommand(newBannerWriteCommand())

	return cmd
}

// bannerConfigPath resolves the .codebanner.json location from the banner
// flags, falling back to the project config.
func bannerConfigPath(cmd *cobra.Command, cfg *config.Config) string {
	folder, _ := cmd.Flags().GetString("folder")
	name, _ := cmd.Flags().GetString("config-file")
	if folder == "" && name == "" {
		return cfg.Banner.Config
	}
	if folder == "" {
		folder = "."
	}
	if name == "" {
		name = filepath.Base(cfg.Banner.Config)
	}
	return filepath.Join(folder, name)
}

func newBannerInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create or reset the banner config",
		Long: `Create a fresh banner config, discarding any existing one.

On a terminal the project fields are collected interactively; otherwise the
config is written with empty fields to fill in by hand.

Examples:
  devtools banner init
  devtools banner init --folder tools`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunBannerInit(cmd)
		},
	}
}

// RunBannerInit writes a fresh banner config, prompting for the project
// fields when running interactively.
func RunBannerInit(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	b, err := banner.Open(bannerConfigPath(cmd, cfg))
	if err != nil {
		return err
	}
	b.Reset()

	if tty.IsStdoutTerminal() {
		if err := promptBannerConfig(b.Config); err != nil {
			return fmt.Errorf("failed to collect project fields: %w", err)
		}
	} else {
		bannerCmdLog.Print("Not a terminal, writing config with empty project fields")
	}

	if err := b.SaveConfig(); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(
		fmt.Sprintf("Wrote %s", console.ToRelativePath(b.ConfigPath))))
	fmt.Fprintln(os.Stderr, console.LayoutEmphasisBox(
		"Next steps:\n"+
			"  devtools banner scan --update merge\n"+
			"  devtools banner write", styles.ColorInfo))
	return nil
}

// promptBannerConfig collects the project fields interactively.
func promptBannerConfig(cfg *banner.Config) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Value(&cfg.Project),
			huh.NewInput().
				Title("Repository").
				Description("Shown in parentheses after the project name; leave empty to omit").
				Value(&cfg.Repo),
			huh.NewInput().
				Title("License").
				Value(&cfg.License),
			huh.NewInput().
				Title("Copyright owner").
				Value(&cfg.CopyrightOwner),
			huh.NewInput().
				Title("Copyright start year").
				Value(&cfg.CopyrightStartDate).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := strconv.Atoi(s); err != nil || len(s) != 4 {
						return errors.New("enter a four-digit year")
					}
					return nil
				}),
		),
	).WithAccessible(console.IsAccessibleMode())

	return form.Run()
}

func newBannerScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Find source files matching the banner patterns",
		Long: `Scan the configured folders for files matching the include patterns.

By default matches are printed without touching the config. With --update
merge, newly found files are added to the config; with --update full,
entries whose files no longer exist are dropped as well.

Examples:
  devtools banner scan
  devtools banner scan --update merge
  devtools banner scan --update full`,
		RunE: func(cmd *cobra.Command, args []string) error {
			update, _ := cmd.Flags().GetString("update")
			return RunBannerScan(cmd, update)
		},
	}

	cmd.Flags().String("update", "no", "Apply scan results to the config: no, merge, or full")

	return cmd
}

// RunBannerScan scans for candidate files and optionally folds them into
// the config.
func RunBannerScan(cmd *cobra.Command, update string) error {
	switch update {
	case "no", "merge", "full":
	default:
		return fmt.Errorf("invalid --update mode %q (expected no, merge, or full)", update)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	b, err := banner.Open(bannerConfigPath(cmd, cfg))
	if err != nil {
		return err
	}

	files, err := b.Scan()
	if err != nil {
		return err
	}
	bannerCmdLog.Printf("Scan found %d files", len(files))

	if update == "no" {
		for _, f := range files {
			fmt.Println(f)
		}
		fmt.Fprintln(os.Stderr, console.FormatInfoMessage(fmt.Sprintf("Found %d file(s)", len(files))))
		return nil
	}

	before := len(b.Config.Files)
	b.AddFiles(files, update == "full")
	if err := b.SaveConfig(); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(
		fmt.Sprintf("Config now tracks %d file(s) (%d before)", len(b.Config.Files), before)))
	return nil
}

func newBannerWriteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "write",
		Short: "Rewrite the banner header in every tracked file",
		Long: `Rewrite the banner header at the top of every file listed in the config.

The existing leading comment block is stripped and replaced with the
rendered banner. Files listed in the config but missing on disk are
reported and skipped.

Examples:
  devtools banner write
  devtools banner write --folder tools`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunBannerWrite(cmd)
		},
	}
}

// RunBannerWrite rewrites the headers of all tracked files.
func RunBannerWrite(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	b, err := banner.Open(bannerConfigPath(cmd, cfg))
	if err != nil {
		return err
	}

	written, err := b.WriteAll()
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(
		fmt.Sprintf("Updated %d file header(s)", written)))
	return nil
}
