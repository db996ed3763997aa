// Package config loads the devtools.yml project configuration. Values can be
// overridden through DEVTOOLS_* environment variables, and all relative paths
// are resolved against the directory containing the config file so commands
// behave the same from any working directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/goccy/go-yaml"

	"github.com/scrutinytools/devtools/pkg/logger"
)

var configLog = logger.New("config:config")

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "devtools.yml"

// Config is the root of the devtools.yml file.
type Config struct {
	Icons  IconsConfig  `yaml:"icons" envPrefix:"DEVTOOLS_ICONS_"`
	Stats  StatsConfig  `yaml:"stats" envPrefix:"DEVTOOLS_STATS_"`
	Banner BannerConfig `yaml:"banner" envPrefix:"DEVTOOLS_BANNER_"`

	// BaseDir is the directory relative paths were resolved against.
	BaseDir string `yaml:"-"`
}

// IconsConfig configures the icon generate and deploy commands.
type IconsConfig struct {
	// SpecDir holds common.json, the per-variant spec files and the source images.
	SpecDir string `yaml:"spec_dir" env:"SPEC_DIR"`
	// ScratchDir is the generator output root; one subdirectory per variant.
	ScratchDir string `yaml:"scratch_dir" env:"SCRATCH_DIR"`
	// DestDir is the published asset root; one subdirectory per variant.
	DestDir string `yaml:"dest_dir" env:"DEST_DIR"`
	// Variants lists the variant names to generate and publish, in order.
	Variants []string `yaml:"variants" env:"VARIANTS"`
}

// StatsConfig configures the stats command.
type StatsConfig struct {
	// Database is the SQLite file used by stats history.
	Database string `yaml:"database" env:"DATABASE"`
	// TestPatterns are extra globs that mark files as tests.
	TestPatterns []string `yaml:"test_patterns" env:"TEST_PATTERNS"`
	// DocPatterns are globs that mark files as documentation.
	DocPatterns []string `yaml:"doc_patterns" env:"DOC_PATTERNS"`
	// ExcludePatterns are globs for files to leave out of the scan.
	ExcludePatterns []string `yaml:"exclude_patterns" env:"EXCLUDE_PATTERNS"`
}

// BannerConfig configures the banner command.
type BannerConfig struct {
	// Config is the path to the .codebanner.json file.
	Config string `yaml:"config" env:"CONFIG"`
}

// Default returns the configuration used when no config file exists, with
// paths resolved against baseDir.
func Default(baseDir string) *Config {
	cfg := &Config{
		Icons: IconsConfig{
			SpecDir:    "icons",
			ScratchDir: "output",
			DestDir:    filepath.Join("assets", "icons"),
			Variants:   []string{"dark", "light"},
		},
		Stats: StatsConfig{
			Database: filepath.Join(".devtools", "stats.db"),
		},
		Banner: BannerConfig{
			Config: ".codebanner.json",
		},
	}
	cfg.resolve(baseDir)
	return cfg
}

// Load reads the config file at path, applies environment overrides, and
// resolves relative paths against the file's directory. A missing file is not
// an error: defaults resolved against the current directory are returned, so
// every command works in an unconfigured checkout.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		configLog.Printf("Config file %s not found, using defaults", path)
		cwd, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", wdErr)
		}
		cfg := Default(cwd)
		if err := env.Parse(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
		}
		cfg.resolve(cwd)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %s: %w", path, err)
	}
	baseDir := filepath.Dir(abs)

	cfg := Default(baseDir)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	cfg.resolve(baseDir)
	configLog.Printf("Loaded config from %s (base %s)", path, baseDir)
	return cfg, nil
}

// resolve anchors every relative path at baseDir. Paths that are already
// absolute are kept as-is, matching what --config with absolute values does.
func (c *Config) resolve(baseDir string) {
	c.BaseDir = baseDir
	c.Icons.SpecDir = resolvePath(baseDir, c.Icons.SpecDir)
	c.Icons.ScratchDir = resolvePath(baseDir, c.Icons.ScratchDir)
	c.Icons.DestDir = resolvePath(baseDir, c.Icons.DestDir)
	c.Stats.Database = resolvePath(baseDir, c.Stats.Database)
	c.Banner.Config = resolvePath(baseDir, c.Banner.Config)
}

func resolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
