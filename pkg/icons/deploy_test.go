//go:build !integration

package icons

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/scrutinytools/devtools/pkg/testutil"
)

// fakeGenerator writes a deterministic file set for each variant.
type fakeGenerator struct {
	mu         sync.Mutex
	calls      []string
	files      map[string][]string
	failFor    map[string]error
	skipOutput map[string]bool
}

func (g *fakeGenerator) Generate(_ context.Context, variant, outputDir string) error {
	g.mu.Lock()
	g.calls = append(g.calls, variant)
	g.mu.Unlock()

	if err := g.failFor[variant]; err != nil {
		return err
	}
	if g.skipOutput[variant] {
		return nil
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	for _, name := range g.files[variant] {
		content := variant + ":" + name
		if err := os.WriteFile(filepath.Join(outputDir, name), []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func newTestDeployer(t *testing.T, gen Generator) *Deployer {
	t.Helper()
	dir := testutil.TempDir(t, "deploy-*")
	dest := filepath.Join(dir, "assets", "icons")
	if err := os.MkdirAll(dest, 0o755); err != nil {
		t.Fatalf("Failed to create destination root: %v", err)
	}
	return &Deployer{
		ScratchRoot: filepath.Join(dir, "output"),
		DestRoot:    dest,
		Variants:    []string{"dark", "light"},
		Generator:   gen,
	}
}

// snapshotDir maps file paths relative to root onto their contents.
func snapshotDir(t *testing.T, root string) map[string]string {
	t.Helper()
	snap := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		snap[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk %s: %v", root, err)
	}
	return snap
}

// captureStderr redirects os.Stderr around fn and returns what was written.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stderr = w

	done := make(chan string)
	go func() {
		data, _ := io.ReadAll(r)
		done <- string(data)
	}()

	fn()

	w.Close()
	os.Stderr = old
	return <-done
}

func TestDeployPublishesGeneratedVariants(t *testing.T) {
	gen := &fakeGenerator{files: map[string][]string{
		"dark":  {"app_16x16.png", "app_32x32.png"},
		"light": {"app_16x16.png"},
	}}
	d := newTestDeployer(t, gen)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	snap := snapshotDir(t, d.DestRoot)
	want := map[string]string{
		filepath.Join("dark", "app_16x16.png"):  "dark:app_16x16.png",
		filepath.Join("dark", "app_32x32.png"):  "dark:app_32x32.png",
		filepath.Join("light", "app_16x16.png"): "light:app_16x16.png",
	}
	if len(snap) != len(want) {
		t.Errorf("Expected %d published files, got %d: %v", len(want), len(snap), snap)
	}
	for rel, content := range want {
		if snap[rel] != content {
			t.Errorf("Published %s = %q, want %q", rel, snap[rel], content)
		}
	}

	if !slices.Equal(gen.calls, []string{"dark", "light"}) {
		t.Errorf("Expected generation order [dark light], got %v", gen.calls)
	}

	// publishing moves the scratch variant directories away
	for _, variant := range d.Variants {
		if _, err := os.Stat(filepath.Join(d.ScratchRoot, variant)); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Expected scratch variant %s to be moved, stat err: %v", variant, err)
		}
	}
}

func TestDeployReplacesStaleDestinationFiles(t *testing.T) {
	gen := &fakeGenerator{files: map[string][]string{
		"dark":  {"a.svg", "b.svg"},
		"light": {"a.svg"},
	}}
	d := newTestDeployer(t, gen)

	darkDir := filepath.Join(d.DestRoot, "dark")
	if err := os.MkdirAll(darkDir, 0o755); err != nil {
		t.Fatalf("Failed to create dark dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(darkDir, "old.svg"), []byte("stale"), 0o644); err != nil {
		t.Fatalf("Failed to write stale file: %v", err)
	}

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(darkDir, "old.svg")); !errors.Is(err, fs.ErrNotExist) {
		t.Error("Expected stale old.svg to be removed")
	}
	for _, name := range []string{"a.svg", "b.svg"} {
		if _, err := os.Stat(filepath.Join(darkDir, name)); err != nil {
			t.Errorf("Expected published file %s: %v", name, err)
		}
	}
}

func TestDeployTwiceIsIdempotent(t *testing.T) {
	gen := &fakeGenerator{files: map[string][]string{
		"dark":  {"app_16x16.png"},
		"light": {"app_16x16.png", "tray_24x24.png"},
	}}
	d := newTestDeployer(t, gen)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	first := snapshotDir(t, d.DestRoot)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	second := snapshotDir(t, d.DestRoot)

	if len(first) != len(second) {
		t.Fatalf("Expected identical trees, got %d then %d files", len(first), len(second))
	}
	for rel, content := range first {
		if second[rel] != content {
			t.Errorf("File %s changed between runs: %q vs %q", rel, content, second[rel])
		}
	}
}

func TestDeployMissingDestinationRootWarnsBeforeFailing(t *testing.T) {
	gen := &fakeGenerator{files: map[string][]string{
		"dark":  {"a.png"},
		"light": {"a.png"},
	}}
	d := newTestDeployer(t, gen)
	if err := os.RemoveAll(d.DestRoot); err != nil {
		t.Fatalf("Failed to remove destination root: %v", err)
	}

	var runErr error
	stderr := captureStderr(t, func() {
		runErr = d.Run(context.Background())
	})

	var pubErr *PublishError
	if !errors.As(runErr, &pubErr) {
		t.Fatalf("Expected PublishError, got: %v", runErr)
	}
	if pubErr.Variant != "dark" {
		t.Errorf("Expected the first variant to fail publishing, got %s", pubErr.Variant)
	}

	// the missing root does not abort the run before generation
	if !slices.Equal(gen.calls, []string{"dark", "light"}) {
		t.Errorf("Expected both variants generated despite missing root, got %v", gen.calls)
	}

	if !strings.Contains(stderr, d.DestRoot) {
		t.Errorf("Expected warning to contain %s, got: %s", d.DestRoot, stderr)
	}
}

func TestDeployHaltsOnGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{
		files:   map[string][]string{"light": {"a.png"}},
		failFor: map[string]error{"dark": errors.New("renderer crashed")},
	}
	d := newTestDeployer(t, gen)

	err := d.Run(context.Background())
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("Expected GenerationError, got: %v", err)
	}
	if genErr.Variant != "dark" {
		t.Errorf("Expected failing variant dark, got %s", genErr.Variant)
	}
	if !strings.Contains(err.Error(), "renderer crashed") {
		t.Errorf("Expected cause in message, got: %v", err)
	}

	if !slices.Equal(gen.calls, []string{"dark"}) {
		t.Errorf("Expected generation to halt after dark, got %v", gen.calls)
	}
	entries, readErr := os.ReadDir(d.DestRoot)
	if readErr != nil {
		t.Fatalf("Failed to read destination root: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("Expected destination untouched after generation failure, got %d entries", len(entries))
	}
}

func TestDeployHaltsOnFirstPublishFailure(t *testing.T) {
	gen := &fakeGenerator{
		files:      map[string][]string{"light": {"a.png"}},
		skipOutput: map[string]bool{"dark": true},
	}
	d := newTestDeployer(t, gen)

	err := d.Run(context.Background())
	var pubErr *PublishError
	if !errors.As(err, &pubErr) {
		t.Fatalf("Expected PublishError, got: %v", err)
	}
	if pubErr.Variant != "dark" || pubErr.Step != "move" {
		t.Errorf("Expected move failure for dark, got variant=%s step=%s", pubErr.Variant, pubErr.Step)
	}

	if _, statErr := os.Stat(filepath.Join(d.DestRoot, "light")); !errors.Is(statErr, fs.ErrNotExist) {
		t.Error("Expected light to stay unpublished after dark failed")
	}
}

func TestDeployResetsScratchRoot(t *testing.T) {
	gen := &fakeGenerator{files: map[string][]string{
		"dark":  {"a.png"},
		"light": {"a.png"},
	}}
	d := newTestDeployer(t, gen)

	if err := os.MkdirAll(d.ScratchRoot, 0o755); err != nil {
		t.Fatalf("Failed to create scratch root: %v", err)
	}
	if err := os.WriteFile(filepath.Join(d.ScratchRoot, "stale.txt"), []byte("junk"), 0o644); err != nil {
		t.Fatalf("Failed to write stale file: %v", err)
	}

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(d.ScratchRoot, "stale.txt")); !errors.Is(err, fs.ErrNotExist) {
		t.Error("Expected stale scratch contents to be removed")
	}
}

func TestExecGeneratorCommand(t *testing.T) {
	g := &ExecGenerator{Argv: []string{"devtools", "icons", "generate", "--spec-dir", "icons"}}
	got := g.command("dark", filepath.Join("output", "dark"))
	want := []string{"devtools", "icons", "generate", "--spec-dir", "icons", "dark", "--output", filepath.Join("output", "dark")}
	if !slices.Equal(got, want) {
		t.Errorf("command() = %v, want %v", got, want)
	}
}

func TestExecGeneratorEmptyArgv(t *testing.T) {
	g := &ExecGenerator{}
	if err := g.Generate(context.Background(), "dark", "out"); err == nil {
		t.Error("Expected error for empty generator command")
	}
}

func TestSelfGeneratorForwardsConfig(t *testing.T) {
	cfgPath := filepath.Join("tools", "devtools.yml")
	g, err := SelfGenerator(cfgPath, "icons")
	if err != nil {
		t.Fatalf("SelfGenerator failed: %v", err)
	}
	if len(g.Argv) != 7 || g.Argv[1] != "icons" || g.Argv[2] != "generate" {
		t.Fatalf("Expected icons generate subcommand, got %v", g.Argv)
	}
	// The child re-reads the config to validate its theme argument; without
	// the parent's config path it would check a different variant list.
	want := []string{"--config", cfgPath, "--spec-dir", "icons"}
	if !slices.Equal(g.Argv[3:], want) {
		t.Errorf("Expected forwarded flags %v, got %v", want, g.Argv[3:])
	}
}

func TestMoveDirRenames(t *testing.T) {
	dir := testutil.TempDir(t, "move-*")
	src := filepath.Join(dir, "src")
	if err := os.MkdirAll(filepath.Join(src, "nested"), 0o755); err != nil {
		t.Fatalf("Failed to create source tree: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "nested", "f.png"), []byte("payload"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	dst := filepath.Join(dir, "dst")
	if err := moveDir(src, dst); err != nil {
		t.Fatalf("moveDir failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dst, "nested", "f.png"))
	if err != nil {
		t.Fatalf("Expected moved file: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("Moved file content = %q", data)
	}
	if _, err := os.Stat(src); !errors.Is(err, fs.ErrNotExist) {
		t.Error("Expected source to be gone after move")
	}
}

func TestCopyTree(t *testing.T) {
	dir := testutil.TempDir(t, "copy-*")
	src := filepath.Join(dir, "src")
	if err := os.MkdirAll(filepath.Join(src, "a", "b"), 0o755); err != nil {
		t.Fatalf("Failed to create source tree: %v", err)
	}
	files := map[string]string{
		filepath.Join("a", "one.png"):      "1",
		filepath.Join("a", "b", "two.png"): "2",
	}
	for rel, content := range files {
		if err := os.WriteFile(filepath.Join(src, rel), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", rel, err)
		}
	}

	dst := filepath.Join(dir, "dst")
	if err := copyTree(src, dst); err != nil {
		t.Fatalf("copyTree failed: %v", err)
	}

	for rel, content := range files {
		data, err := os.ReadFile(filepath.Join(dst, rel))
		if err != nil {
			t.Fatalf("Expected copied file %s: %v", rel, err)
		}
		if string(data) != content {
			t.Errorf("Copied %s = %q, want %q", rel, data, content)
		}
	}
	// copyTree leaves the source in place
	if _, err := os.Stat(src); err != nil {
		t.Errorf("Expected source to survive copy: %v", err)
	}
}

func TestCopyTreePreservesModes(t *testing.T) {
	dir := testutil.TempDir(t, "copy-*")
	src := filepath.Join(dir, "src")
	if err := os.MkdirAll(filepath.Join(src, "nested"), 0o755); err != nil {
		t.Fatalf("Failed to create source tree: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "run.sh"), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("Failed to write script: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "nested", "data.png"), []byte("png"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	dst := filepath.Join(dir, "dst")
	if err := copyTree(src, dst); err != nil {
		t.Fatalf("copyTree failed: %v", err)
	}

	for _, rel := range []string{"run.sh", filepath.Join("nested", "data.png"), "nested"} {
		srcInfo, err := os.Stat(filepath.Join(src, rel))
		if err != nil {
			t.Fatalf("Failed to stat source %s: %v", rel, err)
		}
		dstInfo, err := os.Stat(filepath.Join(dst, rel))
		if err != nil {
			t.Fatalf("Failed to stat copy %s: %v", rel, err)
		}
		if dstInfo.Mode().Perm() != srcInfo.Mode().Perm() {
			t.Errorf("Mode of %s = %v, want %v", rel, dstInfo.Mode().Perm(), srcInfo.Mode().Perm())
		}
	}
}
