package icons

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/scrutinytools/devtools/pkg/console"
	"github.com/scrutinytools/devtools/pkg/logger"
)

var deployLog = logger.New("icons:deploy")

// Generator produces the full icon set for one variant into outputDir.
type Generator interface {
	Generate(ctx context.Context, variant, outputDir string) error
}

// ExecGenerator invokes an external generator process. The variant name and
// an --output flag are appended to the configured argv.
type ExecGenerator struct {
	Argv []string
}

// SelfGenerator returns an ExecGenerator that re-invokes this binary's own
// "icons generate" subcommand, the default when no external generator is
// configured. The config path is forwarded so the child validates its theme
// against the same variant list as the parent.
func SelfGenerator(configPath, specDir string) (*ExecGenerator, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate executable: %w", err)
	}
	return &ExecGenerator{Argv: []string{exe, "icons", "generate", "--config", configPath, "--spec-dir", specDir}}, nil
}

// command builds the full argv for one variant invocation.
func (g *ExecGenerator) command(variant, outputDir string) []string {
	argv := make([]string, 0, len(g.Argv)+3)
	argv = append(argv, g.Argv...)
	return append(argv, variant, "--output", outputDir)
}

// Generate runs the generator process, echoing the command line so a failed
// step can be replayed by hand.
func (g *ExecGenerator) Generate(ctx context.Context, variant, outputDir string) error {
	if len(g.Argv) == 0 {
		return errors.New("generator command is empty")
	}
	argv := g.command(variant, outputDir)
	fmt.Fprintln(os.Stderr, console.FormatCommandMessage(strings.Join(argv, " ")))

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stderr bytes.Buffer
	cmd.Stdout = os.Stdout
	cmd.Stderr = io.MultiWriter(os.Stderr, &stderr)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("generator exited with code %d", exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run generator: %w", err)
	}
	return nil
}

// Deployer regenerates icon variants into a scratch root and publishes them
// into a destination asset tree. Steps run in a fixed order: reset the
// scratch root, generate every variant, then replace each destination
// variant directory with the freshly generated one.
type Deployer struct {
	ScratchRoot string
	DestRoot    string
	Variants    []string
	Generator   Generator
	Verbose     bool
}

// Run executes the full deployment. It halts on the first failed generation
// or publish step. An absent destination root produces a warning and the
// run continues; the publish step then reports the real failure.
func (d *Deployer) Run(ctx context.Context) error {
	if _, err := os.Stat(d.DestRoot); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, console.FormatWarningMessage(
			fmt.Sprintf("Destination root %s does not exist", d.DestRoot)))
	}

	deployLog.Printf("Resetting scratch root %s", d.ScratchRoot)
	if err := os.RemoveAll(d.ScratchRoot); err != nil {
		return fmt.Errorf("failed to reset scratch root %s: %w", d.ScratchRoot, err)
	}

	for _, variant := range d.Variants {
		outDir := filepath.Join(d.ScratchRoot, variant)
		deployLog.Printf("Generating variant %s into %s", variant, outDir)
		if err := d.Generator.Generate(ctx, variant, outDir); err != nil {
			return NewGenerationError(variant, err)
		}
	}

	for _, variant := range d.Variants {
		if err := d.publish(variant); err != nil {
			return err
		}
		if d.Verbose {
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(fmt.Sprintf("Published variant %s", variant)))
		}
	}

	fmt.Fprintln(os.Stderr, console.FormatLocationMessage(
		fmt.Sprintf("Published %d variant(s) to %s", len(d.Variants), console.ToRelativePath(d.DestRoot))))
	return nil
}

// publish replaces the destination variant directory with the scratch one.
func (d *Deployer) publish(variant string) error {
	src := filepath.Join(d.ScratchRoot, variant)
	dst := filepath.Join(d.DestRoot, variant)

	deployLog.Printf("Publishing %s -> %s", src, dst)
	if err := os.RemoveAll(dst); err != nil {
		return NewPublishError(variant, "delete", err)
	}
	if err := moveDir(src, dst); err != nil {
		return NewPublishError(variant, "move", err)
	}
	return nil
}

// moveDir renames src to dst, falling back to copy-and-delete when the two
// paths live on different filesystems.
func moveDir(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := copyTree(src, dst); err != nil {
		return err
	}
	return os.RemoveAll(src)
}

// copyTree mirrors src under dst, carrying each entry's permission bits so
// the fallback behaves like the rename it stands in for.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, info.Mode().Perm())
		}
		return copyFile(path, target, info.Mode().Perm())
	})
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
