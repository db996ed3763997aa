package banner

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/scrutinytools/devtools/pkg/console"
)

const pythonShebang = "#!/usr/bin/env python3\n\n"

// docstringWidth is the column at which header docstrings wrap.
const docstringWidth = 80

// commentPrefix returns the line-comment marker used in path's language.
func commentPrefix(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		return "#", nil
	case ".go", ".c", ".cpp", ".h", ".hpp":
		return "//", nil
	}
	return "", fmt.Errorf("unsupported file extension %q", filepath.Ext(path))
}

// WriteAll rewrites the banner header of every tracked file. Files missing
// on disk are reported and skipped; anything else stops the run.
func (b *Banner) WriteAll() (int, error) {
	written := 0
	for _, name := range slices.Sorted(maps.Keys(b.Config.Files)) {
		path := filepath.Join(b.BaseDir, filepath.FromSlash(name))
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			fmt.Fprintln(os.Stderr, console.FormatWarningMessage(fmt.Sprintf("File missing: %s", name)))
			continue
		}
		if err := b.WriteHeader(name, b.Config.Files[name]); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// WriteHeader replaces the header block at the top of one tracked file. Any
// leading run of comment and blank lines counts as the old header.
func (b *Banner) WriteHeader(name string, entry FileEntry) error {
	prefix, err := commentPrefix(name)
	if err != nil {
		return fmt.Errorf("cannot write header for %s: %w", name, err)
	}

	path := filepath.Join(b.BaseDir, filepath.FromSlash(name))
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot write header for %s: %w", name, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot write header for %s: %w", name, err)
	}

	body := stripHeader(string(data), prefix)
	header := b.renderHeader(filepath.Base(name), prefix, entry)
	if err := os.WriteFile(path, []byte(header+body), info.Mode().Perm()); err != nil {
		return fmt.Errorf("cannot write header for %s: %w", name, err)
	}
	return nil
}

// stripHeader drops the leading run of comment and whitespace-only lines so
// a rewritten header never stacks on top of the old one.
func stripHeader(content, prefix string) string {
	lines := strings.SplitAfter(content, "\n")
	idx := 0
	for idx < len(lines) && isHeaderLine(lines[idx], prefix) {
		idx++
	}
	return strings.Join(lines[idx:], "")
}

func isHeaderLine(line, prefix string) bool {
	if line == "" {
		return false
	}
	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, prefix) {
		return true
	}
	return strings.TrimSpace(line) == ""
}

// renderHeader builds the block inserted at the top of a file, ending with a
// blank separator line before the body.
func (b *Banner) renderHeader(base, prefix string, entry FileEntry) string {
	var sb strings.Builder
	if entry.AddShebang && prefix == "#" {
		sb.WriteString(pythonShebang)
	}

	sb.WriteString(prefix + "    " + base)
	sb.WriteString(formatDocstring(entry.Docstring, prefix))
	sb.WriteString("\n")
	sb.WriteString(prefix + "\n")
	sb.WriteString(prefix + "   - License : " + b.Config.License + ".\n")

	project := prefix + "   - Project : " + b.Config.Project
	if b.Config.Repo != "" {
		project += " (" + b.Config.Repo + ")"
	}
	sb.WriteString(project + "\n")
	sb.WriteString(prefix + "\n")

	copyright := prefix + "   Copyright (c) " + b.copyrightDate()
	if b.Config.CopyrightOwner != "" {
		copyright += " " + b.Config.CopyrightOwner
	}
	sb.WriteString(copyright + "\n")
	sb.WriteString("\n")
	return sb.String()
}

// copyrightDate renders the year range, collapsing it to a single year when
// the start year matches the current one.
func (b *Banner) copyrightDate() string {
	year := b.Now().Format("2006")
	start := b.Config.CopyrightStartDate
	if start == "" || start == year {
		return year
	}
	return start + "-" + year
}

// formatDocstring wraps the docstring at docstringWidth columns and indents
// every line with the comment marker plus eight spaces. Lines longer than the
// width break at the next space. Empty input renders nothing.
func formatDocstring(text, prefix string) string {
	var lines []string
	for {
		if len(text) <= docstringWidth {
			lines = append(lines, strings.TrimSpace(text))
			break
		}
		if nl := strings.IndexByte(text, '\n'); nl >= 0 && nl <= docstringWidth {
			lines = append(lines, strings.TrimSpace(text[:nl]))
			text = text[nl+1:]
			continue
		}
		cut := docstringWidth
		for cut < len(text) && text[cut] != ' ' && text[cut] != '\n' {
			cut++
		}
		if cut >= len(text) {
			lines = append(lines, text)
			break
		}
		lines = append(lines, strings.TrimSpace(text[:cut]))
		text = text[cut:]
	}

	joined := strings.Join(lines, "\n")
	if joined == "" {
		return ""
	}
	return strings.ReplaceAll("\n"+joined, "\n", "\n"+prefix+strings.Repeat(" ", 8))
}
