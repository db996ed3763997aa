package banner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// Scan walks the configured folders and returns the files matching the
// include patterns, minus the excluded ones. Paths come back slash-separated,
// relative to the base folder, and sorted.
func (b *Banner) Scan() ([]string, error) {
	folders := b.Config.Folders
	if len(folders) == 0 {
		folders = []string{"."}
	}

	var files []string
	seen := map[string]bool{}
	for _, folder := range folders {
		start := filepath.Join(b.BaseDir, folder)
		if _, err := os.Stat(start); err != nil {
			bannerLog.Printf("Skipping missing folder %s", start)
			continue
		}

		walkErr := filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			included, err := matchPatterns(path, b.Config.IncludePatterns)
			if err != nil {
				return err
			}
			if len(included) == 0 {
				return nil
			}
			excluded, err := matchPatterns(path, b.Config.ExcludePatterns)
			if err != nil {
				return err
			}
			for _, file := range included {
				if slices.Contains(excluded, file) {
					continue
				}
				info, statErr := os.Stat(file)
				if statErr != nil || info.IsDir() {
					continue
				}
				rel, relErr := filepath.Rel(b.BaseDir, file)
				if relErr != nil {
					return relErr
				}
				rel = filepath.ToSlash(rel)
				if !seen[rel] {
					seen[rel] = true
					files = append(files, rel)
				}
			}
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", start, walkErr)
		}
	}

	slices.Sort(files)
	return files, nil
}

// matchPatterns globs each pattern inside dir and pools the matches.
func matchPatterns(dir string, patterns []string) ([]string, error) {
	var matches []string
	for _, pattern := range patterns {
		m, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		matches = append(matches, m...)
	}
	return matches, nil
}
