// Package banner maintains license headers at the top of source files. The
// set of files and the text rendered into each header live in a
// .codebanner.json file committed alongside the code.
package banner

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/scrutinytools/devtools/pkg/logger"
)

var bannerLog = logger.New("banner:config")

// FileEntry configures the header of one tracked file.
type FileEntry struct {
	Docstring  string `json:"docstring"`
	AddShebang bool   `json:"add_shebang,omitempty"`
}

// Config is the on-disk .codebanner.json format.
type Config struct {
	Folders            []string             `json:"folders"`
	IncludePatterns    []string             `json:"include_patterns"`
	ExcludePatterns    []string             `json:"exclude_patterns"`
	Project            string               `json:"project"`
	Repo               string               `json:"repo"`
	License            string               `json:"license"`
	CopyrightOwner     string               `json:"copyright_owner"`
	CopyrightStartDate string               `json:"copyright_start_date"`
	Files              map[string]FileEntry `json:"files"`
}

// Banner manages the header config and the files it tracks. File names in
// Config.Files are slash-separated and relative to BaseDir.
type Banner struct {
	BaseDir    string
	ConfigPath string
	Config     *Config
	Now        func() time.Time
}

// Open loads the banner config at configPath, or starts a fresh one when the
// file does not exist yet. The directory holding the config must exist.
func Open(configPath string) (*Banner, error) {
	baseDir := filepath.Dir(configPath)
	info, err := os.Stat(baseDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("folder %s does not exist", baseDir)
	}

	b := &Banner{
		BaseDir:    baseDir,
		ConfigPath: configPath,
		Config:     &Config{},
		Now:        time.Now,
	}

	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := json.Unmarshal(data, b.Config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
		}
		bannerLog.Printf("Loaded banner config with %d files", len(b.Config.Files))
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	b.normalize()
	return b, nil
}

// normalize fills the defaults a hand-edited or missing config may lack.
func (b *Banner) normalize() {
	c := b.Config
	if c.Folders == nil {
		c.Folders = []string{}
	}
	if c.IncludePatterns == nil {
		c.IncludePatterns = []string{}
	}
	if c.ExcludePatterns == nil {
		c.ExcludePatterns = []string{}
	}
	if c.CopyrightStartDate == "" {
		c.CopyrightStartDate = b.Now().Format("2006")
	}
	if c.Files == nil {
		c.Files = map[string]FileEntry{}
	}
}

// Reset discards the loaded config and restores defaults.
func (b *Banner) Reset() {
	b.Config = &Config{}
	b.normalize()
}

// SaveConfig writes the config back with four-space indentation.
func (b *Banner) SaveConfig() error {
	data, err := json.MarshalIndent(b.Config, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode banner config: %w", err)
	}
	if err := os.WriteFile(b.ConfigPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", b.ConfigPath, err)
	}
	return nil
}

// AddFiles registers scanned files in the config. With prune set, entries
// whose files were not found in the scan are dropped.
func (b *Banner) AddFiles(files []string, prune bool) {
	if prune {
		keep := make(map[string]bool, len(files))
		for _, f := range files {
			keep[f] = true
		}
		for name := range b.Config.Files {
			if !keep[name] {
				delete(b.Config.Files, name)
			}
		}
	}
	for _, f := range files {
		if _, ok := b.Config.Files[f]; !ok {
			b.Config.Files[f] = FileEntry{}
		}
	}
}
