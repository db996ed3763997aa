package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scrutinytools/devtools/pkg/console"
	"github.com/scrutinytools/devtools/pkg/icons"
	"github.com/scrutinytools/devtools/pkg/logger"
)

var iconsGenerateLog = logger.New("cli:icons_generate")

// newIconsGenerateCommand creates the icons generate command.
func newIconsGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <theme>",
		Short: "Render one theme's icon set into an output directory",
		Long: `Render every icon listed in the spec files for one theme.

The spec directory holds common.json plus one JSON file per theme; entries in
the theme file shadow same-named entries in common.json. Each icon is
resampled from its source image at every configured size and written as
<name>_<w>x<h>.png into the output directory.

Examples:
  devtools icons generate dark
  devtools icons generate light --output /tmp/icons/light`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			specDir, _ := cmd.Flags().GetString("spec-dir")
			return RunIconsGenerate(cmd, args[0], specDir, output)
		},
	}

	cmd.Flags().String("output", "", "Directory to write rendered icons into (default from config)")
	cmd.Flags().String("spec-dir", "", "Directory holding the icon spec files (default from config)")

	return cmd
}

// RunIconsGenerate renders one theme's icon set.
func RunIconsGenerate(cmd *cobra.Command, theme, specDir, output string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if specDir == "" {
		specDir = cfg.Icons.SpecDir
	}
	if output == "" {
		output = cfg.Icons.ScratchDir
	}

	if !slices.Contains(cfg.Icons.Variants, theme) {
		return fmt.Errorf("unknown theme %q (configured themes: %s)",
			theme, strings.Join(cfg.Icons.Variants, ", "))
	}

	iconsGenerateLog.Printf("Rendering theme %s from %s into %s", theme, specDir, output)
	spec, err := icons.LoadSpec(specDir, theme)
	if err != nil {
		var syntaxErr *icons.SyntaxError
		if errors.As(err, &syntaxErr) {
			fmt.Fprintln(os.Stderr, console.FormatError(syntaxErr.Diagnostic()))
			return errors.New("icon spec validation failed")
		}
		return err
	}

	builder := &icons.Builder{
		Spec:      spec,
		OutputDir: output,
		Verbose:   verboseFlag(cmd),
	}
	written, err := builder.Build(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(
		fmt.Sprintf("Rendered %d icon(s) for theme %s", written, theme)))
	return nil
}
