package icons

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/scrutinytools/devtools/pkg/console"
	"github.com/scrutinytools/devtools/pkg/logger"
)

var watchLog = logger.New("icons:watch")

// Watch monitors the spec directory and invokes onChange after file activity
// settles for the debounce interval. Failures from onChange are reported and
// watching continues. Watch blocks until ctx is canceled.
func Watch(ctx context.Context, dir string, debounce time.Duration, onChange func(context.Context) error) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("icon spec directory does not exist: %s", dir)
	}
	if !info.IsDir() {
		return fmt.Errorf("icon spec path is not a directory: %s", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchTree(watcher, dir); err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, console.FormatInfoMessage(
		fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", console.ToRelativePath(dir))))

	timer := time.NewTimer(debounce)
	stopTimer(timer)
	pending := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
				!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			watchLog.Printf("Event: %s", event)
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						watchLog.Printf("Failed to watch new directory %s: %v", event.Name, err)
					}
				}
			}
			stopTimer(timer)
			timer.Reset(debounce)
			pending = true

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, console.FormatWarningMessage(fmt.Sprintf("Watcher error: %v", err)))

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			if err := onChange(ctx); err != nil {
				fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
				fmt.Fprintln(os.Stderr, console.FormatInfoMessage("Still watching for changes"))
			}
		}
	}
}

// addWatchTree registers dir and its immediate subdirectories. Spec layouts
// keep sources at most one level below the spec files.
func addWatchTree(watcher *fsnotify.Watcher, dir string) error {
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", dir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(dir, entry.Name())
		if err := watcher.Add(sub); err != nil {
			return fmt.Errorf("failed to watch %s: %w", sub, err)
		}
	}
	return nil
}

// stopTimer halts a timer and drains its channel if it already fired.
func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
