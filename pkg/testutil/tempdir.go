// Package testutil provides shared helpers for test fixtures.
package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

var (
	runDirOnce sync.Once
	runDir     string
)

// GetTestRunDir returns a directory shared by all tests in one process run.
// Keeping per-test scratch dirs under a single parent makes leftover state
// easy to find when a test is interrupted before cleanup.
func GetTestRunDir() string {
	runDirOnce.Do(func() {
		base := filepath.Join(os.TempDir(), "devtools-test-runs")
		if err := os.MkdirAll(base, 0o755); err != nil {
			runDir = os.TempDir()
			return
		}
		dir, err := os.MkdirTemp(base, "run-*")
		if err != nil {
			runDir = base
			return
		}
		runDir = dir
	})
	return runDir
}

// TempDir creates a temporary directory under the shared run directory and
// removes it when the test completes.
func TempDir(t *testing.T, pattern string) string {
	t.Helper()
	dir, err := os.MkdirTemp(GetTestRunDir(), pattern)
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.RemoveAll(dir); err != nil {
			t.Logf("failed to clean up temp dir %s: %v", dir, err)
		}
	})
	return dir
}
