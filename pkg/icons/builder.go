package icons

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"

	"github.com/scrutinytools/devtools/pkg/console"
	"github.com/scrutinytools/devtools/pkg/envutil"
	"github.com/scrutinytools/devtools/pkg/logger"
)

var builderLog = logger.New("icons:builder")

// Builder renders every asset in a spec into an output directory.
type Builder struct {
	Spec      *Spec
	OutputDir string
	Verbose   bool
}

// Build renders all assets concurrently and returns the number of files
// written. Output files follow the {name}_{width}x{height}.png pattern.
func (b *Builder) Build(ctx context.Context) (int, error) {
	if err := os.MkdirAll(b.OutputDir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output directory %s: %w", b.OutputDir, err)
	}

	workers := envutil.GetIntFromEnv("DEVTOOLS_MAX_WORKERS", runtime.NumCPU(), 1, 64, builderLog)
	builderLog.Printf("Rendering %d assets for variant %s with %d workers", len(b.Spec.Assets), b.Spec.Variant, workers)

	var written atomic.Int64
	p := pool.New().WithMaxGoroutines(workers).WithErrors().WithContext(ctx)
	for _, name := range b.Spec.Names() {
		asset := b.Spec.Assets[name]
		p.Go(func(ctx context.Context) error {
			n, err := b.buildAsset(ctx, name, asset)
			written.Add(int64(n))
			return err
		})
	}
	if err := p.Wait(); err != nil {
		return int(written.Load()), err
	}
	return int(written.Load()), nil
}

// buildAsset renders one asset at every configured size.
func (b *Builder) buildAsset(ctx context.Context, name string, asset AssetSpec) (int, error) {
	src, err := loadSource(filepath.Join(b.Spec.Dir, asset.Src))
	if err != nil {
		return 0, fmt.Errorf("asset '%s': %w", name, err)
	}

	count := 0
	for _, size := range asset.Formats {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		out := filepath.Join(b.OutputDir, fmt.Sprintf("%s_%s.png", name, size))
		bytes, err := writePNG(out, scaleTo(src, size))
		if err != nil {
			return count, fmt.Errorf("asset '%s': failed to write %s: %w", name, filepath.Base(out), err)
		}
		count++
		builderLog.Printf("Wrote %s", out)
		if b.Verbose {
			fmt.Fprintln(os.Stderr, console.FormatVerboseMessage(
				fmt.Sprintf("  wrote %s (%s)", filepath.Base(out), console.FormatFileSize(bytes))))
		}
	}
	return count, nil
}
