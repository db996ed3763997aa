// Package gitutil reads file listings and repository layout from git.
package gitutil

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/scrutinytools/devtools/pkg/logger"
)

var log = logger.New("gitutil:gitutil")

// IsRepo reports whether dir is inside a git work tree.
func IsRepo(dir string) bool {
	out, err := runGit(dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// RepoRoot returns the top-level directory of the repository containing dir.
func RepoRoot(dir string) (string, error) {
	out, err := runGit(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ListTrackedFiles returns the paths of all files tracked at HEAD, relative
// to the repository root. The listing matches what a clean checkout contains,
// so generated and ignored files never show up.
func ListTrackedFiles(dir string) ([]string, error) {
	out, err := runGit(dir, "ls-tree", "--full-tree", "-r", "--name-only", "HEAD")
	if err != nil {
		return nil, err
	}

	var files []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	log.Printf("Listed %d tracked files in %s", len(files), dir)
	return files, nil
}

func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git %s exited with code %d: %s",
				strings.Join(args, " "), exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("failed to run git %s: %w", strings.Join(args, " "), err)
	}
	return stdout.String(), nil
}
