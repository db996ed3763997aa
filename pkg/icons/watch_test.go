//go:build !integration

package icons

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/scrutinytools/devtools/pkg/testutil"
)

func TestWatchRequiresExistingDirectory(t *testing.T) {
	missing := filepath.Join(testutil.TempDir(t, "watch-*"), "missing")
	err := Watch(context.Background(), missing, time.Millisecond, nil)
	if err == nil {
		t.Fatal("Expected error for missing spec directory")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Expected missing-directory error, got: %v", err)
	}
}

func TestWatchInvokesCallbackAfterChange(t *testing.T) {
	dir := testutil.TempDir(t, "watch-*")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, 50*time.Millisecond, func(context.Context) error {
			fired <- struct{}{}
			return nil
		})
	}()

	// let the watcher register before writing
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "dark.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("Expected change callback to fire")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Expected Watch to return after cancellation")
	}
}

func TestWatchKeepsRunningWhenCallbackFails(t *testing.T) {
	dir := testutil.TempDir(t, "watch-*")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan int, 4)
	count := 0
	go func() {
		_ = Watch(ctx, dir, 50*time.Millisecond, func(context.Context) error {
			count++
			fired <- count
			if count == 1 {
				return errors.New("generation blew up")
			}
			return nil
		})
	}()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "a.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("Expected first callback")
	}

	// a later change still triggers after the failed callback
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "b.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("Expected watcher to keep running after a callback error")
	}
}

func TestWatchPicksUpNewSubdirectories(t *testing.T) {
	dir := testutil.TempDir(t, "watch-*")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 8)
	go func() {
		_ = Watch(ctx, dir, 50*time.Millisecond, func(context.Context) error {
			fired <- struct{}{}
			return nil
		})
	}()

	time.Sleep(100 * time.Millisecond)
	sub := filepath.Join(dir, "sources")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}

	// the mkdir itself debounces into one callback
	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("Expected callback for new directory")
	}

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(sub, "app.png"), []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write file in subdirectory: %v", err)
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("Expected callback for file in new subdirectory")
	}
}
