//go:build !integration

package banner

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/scrutinytools/devtools/pkg/testutil"
)

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func newScanBanner(t *testing.T, cfg *Config) *Banner {
	t.Helper()
	dir := testutil.TempDir(t, "banner-scan-*")
	b := &Banner{
		BaseDir:    dir,
		ConfigPath: filepath.Join(dir, ".codebanner.json"),
		Config:     cfg,
		Now:        fixedClock,
	}
	b.normalize()
	return b
}

func TestScanMatchesIncludePatterns(t *testing.T) {
	b := newScanBanner(t, &Config{
		Folders:         []string{"src", "tools"},
		IncludePatterns: []string{"*.py"},
	})
	writeTree(t, b.BaseDir, map[string]string{
		"src/main.py":      "print('hi')\n",
		"src/util.py":      "pass\n",
		"src/notes.txt":    "not code\n",
		"tools/release.py": "pass\n",
	})

	files, err := b.Scan()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []string{"src/main.py", "src/util.py", "tools/release.py"}
	if !slices.Equal(files, want) {
		t.Errorf("Expected %v, got %v", want, files)
	}
}

func TestScanAppliesExcludePatterns(t *testing.T) {
	b := newScanBanner(t, &Config{
		Folders:         []string{"src"},
		IncludePatterns: []string{"*.py"},
		ExcludePatterns: []string{"util*"},
	})
	writeTree(t, b.BaseDir, map[string]string{
		"src/main.py": "print('hi')\n",
		"src/util.py": "pass\n",
	})

	files, err := b.Scan()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !slices.Equal(files, []string{"src/main.py"}) {
		t.Errorf("Expected excluded file to be dropped, got %v", files)
	}
}

func TestScanWalksNestedFolders(t *testing.T) {
	b := newScanBanner(t, &Config{
		IncludePatterns: []string{"*.cpp", "*.hpp"},
	})
	writeTree(t, b.BaseDir, map[string]string{
		"main.cpp":            "int main() {}\n",
		"lib/render/draw.cpp": "void draw() {}\n",
		"lib/render/draw.hpp": "void draw();\n",
	})

	files, err := b.Scan()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []string{"lib/render/draw.cpp", "lib/render/draw.hpp", "main.cpp"}
	if !slices.Equal(files, want) {
		t.Errorf("Expected %v, got %v", want, files)
	}
}

func TestScanSkipsMissingFolder(t *testing.T) {
	b := newScanBanner(t, &Config{
		Folders:         []string{"src", "gone"},
		IncludePatterns: []string{"*.py"},
	})
	writeTree(t, b.BaseDir, map[string]string{
		"src/main.py": "pass\n",
	})

	files, err := b.Scan()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !slices.Equal(files, []string{"src/main.py"}) {
		t.Errorf("Expected missing folder to be skipped, got %v", files)
	}
}
