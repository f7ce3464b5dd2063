package scanner

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	ignore "github.com/sabhiram/go-gitignore"
)

// FileEntry is one file selected by a scan.
type FileEntry struct {
	AbsPath string
	RelPath string // slash-separated, relative to the repo root
	Bytes   int64
}

// Options configures a Scanner.
type Options struct {
	// RepoRoot anchors relative paths and .gitignore resolution.
	RepoRoot string

	// Target is the file or directory to scan. A relative target is
	// resolved against RepoRoot.
	Target string

	// MaxFileBytes drops files larger than this. Zero disables the cap.
	MaxFileBytes int64

	// ExcludeDirs are directory names pruned anywhere in the tree.
	ExcludeDirs []string

	// IgnoreGlobs are glob patterns matched against the slash-separated
	// repo-relative path.
	IgnoreGlobs []string

	// Verbose logs every skip decision during the walk.
	Verbose bool
}

type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Scanner selects the candidate files for a context slice: it walks the
// target, applies directory excludes, ignore globs, the repository's
// .gitignore, and size limits, and returns the survivors in a stable
// order.
type Scanner struct {
	opts       Options
	exclude    map[string]struct{}
	ignores    []compiledPattern
	gitIgnore  *ignore.GitIgnore
	verboseLog func(format string, args ...any)
}

// New compiles the scan options. Invalid glob patterns fail here, not
// at walk time.
func New(opts Options) (*Scanner, error) {
	s := &Scanner{
		opts:       opts,
		exclude:    make(map[string]struct{}, len(opts.ExcludeDirs)),
		verboseLog: func(string, ...any) {},
	}
	if opts.Verbose {
		s.verboseLog = log.Printf
	}

	for _, dir := range opts.ExcludeDirs {
		s.exclude[dir] = struct{}{}
	}

	for _, pattern := range opts.IgnoreGlobs {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		s.ignores = append(s.ignores, compiledPattern{pattern: pattern, glob: g})
	}

	// A missing .gitignore is not an error; the filter is simply absent.
	if gi, err := ignore.CompileIgnoreFile(filepath.Join(opts.RepoRoot, ".gitignore")); err == nil {
		s.gitIgnore = gi
	}

	return s, nil
}

// Scan walks the target and returns the selected files sorted by
// relative path. A single-file target bypasses filtering except for the
// size cap, on the grounds that the caller named it explicitly.
func (s *Scanner) Scan() ([]FileEntry, error) {
	target := s.opts.Target
	if !filepath.IsAbs(target) {
		target = filepath.Join(s.opts.RepoRoot, target)
	}
	target = filepath.Clean(target)

	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("target not found: %s: %w", target, err)
	}

	if !info.IsDir() {
		if s.opts.MaxFileBytes > 0 && info.Size() > s.opts.MaxFileBytes {
			return []FileEntry{}, nil
		}
		rel, err := s.relPath(target)
		if err != nil {
			return nil, err
		}
		return []FileEntry{{AbsPath: target, RelPath: rel, Bytes: info.Size()}}, nil
	}

	entries := []FileEntry{}
	err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.verboseLog("scan: skipping %s: %v", path, err)
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if path == target {
				return nil
			}
			if _, excluded := s.exclude[name]; excluded {
				s.verboseLog("scan: pruning excluded dir %s", path)
				return filepath.SkipDir
			}
			if strings.HasPrefix(name, ".") {
				s.verboseLog("scan: pruning hidden dir %s", path)
				return filepath.SkipDir
			}
			return nil
		}

		// Symlinks are skipped rather than followed.
		if d.Type()&fs.ModeSymlink != 0 {
			s.verboseLog("scan: skipping symlink %s", path)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if strings.HasPrefix(name, ".") {
			s.verboseLog("scan: skipping hidden file %s", path)
			return nil
		}

		rel, relErr := s.relPath(path)
		if relErr != nil {
			return nil
		}
		if s.ignored(rel) {
			s.verboseLog("scan: ignoring %s", rel)
			return nil
		}

		fi, infoErr := d.Info()
		if infoErr != nil {
			s.verboseLog("scan: skipping %s: %v", path, infoErr)
			return nil
		}
		if fi.Size() == 0 {
			return nil
		}
		if s.opts.MaxFileBytes > 0 && fi.Size() > s.opts.MaxFileBytes {
			s.verboseLog("scan: skipping %s: %d bytes exceeds cap", rel, fi.Size())
			return nil
		}

		entries = append(entries, FileEntry{AbsPath: path, RelPath: rel, Bytes: fi.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].RelPath < entries[j].RelPath })
	return entries, nil
}

func (s *Scanner) relPath(path string) (string, error) {
	rel, err := filepath.Rel(s.opts.RepoRoot, path)
	if err != nil {
		return "", fmt.Errorf("path %s is not relative to repo root: %w", path, err)
	}
	return filepath.ToSlash(rel), nil
}

func (s *Scanner) ignored(rel string) bool {
	for _, cp := range s.ignores {
		if cp.glob.Match(rel) {
			return true
		}
	}
	if s.gitIgnore != nil && s.gitIgnore.MatchesPath(rel) {
		return true
	}
	return false
}
