package stats

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/scrutinytools/devtools/pkg/envutil"
	"github.com/scrutinytools/devtools/pkg/gitutil"
	"github.com/scrutinytools/devtools/pkg/logger"
)

var scanLog = logger.New("stats:scan")

// FileKind buckets a file for reporting. Test files report their code lines
// in the Test column; everything else lands in Code.
type FileKind int

const (
	KindCode FileKind = iota
	KindTest
	KindDoc
)

// testFileRegexp matches conventional test file names, like test_foo.py and
// foo.test.ts.
var testFileRegexp = regexp.MustCompile(`^test_.+|^.+\.test(\..+)?$`)

// FileReport holds line counts for one scanned file.
type FileReport struct {
	Language Language
	Kind     FileKind
	Code     int
	Comment  int
	Blank    int
}

// Report aggregates scan results for one folder.
type Report struct {
	Files   map[string]*FileReport
	Skipped []string
}

// ScanOptions tune which files count as tests or docs and which are
// excluded entirely. Patterns match against both the git-relative path and
// the base name.
type ScanOptions struct {
	TestPatterns    []string
	DocPatterns     []string
	ExcludePatterns []string
}

// Scan classifies every git-tracked file under folder. Files in languages
// the scanner does not recognize are recorded as skipped rather than
// failing the scan.
func Scan(folder string, opts ScanOptions) (*Report, error) {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s is not a folder", folder)
	}
	if !gitutil.IsRepo(folder) {
		return nil, fmt.Errorf("%s is not inside a git repository", folder)
	}

	root, err := gitutil.RepoRoot(folder)
	if err != nil {
		return nil, err
	}
	files, err := gitutil.ListTrackedFiles(folder)
	if err != nil {
		return nil, err
	}
	slices.Sort(files)

	// Tracked paths are repo-root relative; when scanning a subfolder, keep
	// only the files beneath it and rebase their names on the folder.
	prefix, err := folderWithinRepo(folder, root)
	if err != nil {
		return nil, err
	}

	workers := envutil.GetIntFromEnv("DEVTOOLS_MAX_WORKERS", runtime.NumCPU(), 1, 64, scanLog)
	report := &Report{Files: make(map[string]*FileReport)}
	var mu sync.Mutex
	p := pool.New().WithMaxGoroutines(workers)
	for _, full := range files {
		if !strings.HasPrefix(full, prefix) {
			continue
		}
		name := full[len(prefix):]
		p.Go(func() {
			fr, err := scanFile(folder, name, opts)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				scanLog.Printf("Skipping %s: %v", name, err)
				report.Skipped = append(report.Skipped, name)
				return
			}
			report.Files[name] = fr
		})
	}
	p.Wait()
	slices.Sort(report.Skipped)
	return report, nil
}

// folderWithinRepo returns folder's slash-separated path relative to the
// repository root with a trailing "/", or "" when folder is the root itself.
func folderWithinRepo(folder, root string) (string, error) {
	abs, err := filepath.Abs(folder)
	if err != nil {
		return "", err
	}
	// Resolve symlinks before comparing; git reports the resolved path and
	// macOS tempdirs live under /private.
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel) + "/", nil
}

func scanFile(folder, name string, opts ScanOptions) (*FileReport, error) {
	if matchAny(opts.ExcludePatterns, name) {
		return nil, fmt.Errorf("excluded by pattern")
	}
	lang, ok := DetectLanguage(name)
	if !ok {
		return nil, fmt.Errorf("unknown language")
	}

	f, err := os.Open(filepath.Join(folder, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fr := &FileReport{Language: lang, Kind: fileKind(name, opts)}
	c := classifier{lang: lang}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		switch c.Classify(scanner.Text()) {
		case LineBlank:
			fr.Blank++
		case LineComment:
			fr.Comment++
		default:
			fr.Code++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return fr, nil
}

// fileKind applies configured patterns first, then built-in test naming
// conventions.
func fileKind(name string, opts ScanOptions) FileKind {
	if matchAny(opts.TestPatterns, name) {
		return KindTest
	}
	if matchAny(opts.DocPatterns, name) {
		return KindDoc
	}
	base := filepath.Base(name)
	if testFileRegexp.MatchString(base) || strings.HasSuffix(base, "_test.go") {
		return KindTest
	}
	return KindCode
}

func matchAny(patterns []string, name string) bool {
	base := filepath.Base(name)
	for _, pattern := range patterns {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}
