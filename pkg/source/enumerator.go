package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultSkipPatterns contains directory names never descended into.
var DefaultSkipPatterns = []string{
	"node_modules",
	".git",
}

// EnumeratorOption configures an Enumerator.
type EnumeratorOption func(*Enumerator)

// WithExcludePatterns adds directory names to skip, on top of DefaultSkipPatterns.
func WithExcludePatterns(patterns ...string) EnumeratorOption {
	return func(e *Enumerator) {
		for _, p := range patterns {
			e.skip[p] = true
		}
	}
}

// WithGitignore toggles filtering by the root .gitignore. Enabled by default.
func WithGitignore(enabled bool) EnumeratorOption {
	return func(e *Enumerator) {
		e.gitignore = enabled
	}
}

// Enumerator resolves glob patterns to files under a root.
type Enumerator struct {
	ignore    *ignore.GitIgnore
	root      string
	skip      map[string]bool
	gitignore bool
}

// NewEnumerator creates an enumerator for root.
func NewEnumerator(root string, opts ...EnumeratorOption) (*Enumerator, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}

	e := &Enumerator{
		root:      abs,
		skip:      make(map[string]bool, len(DefaultSkipPatterns)),
		gitignore: true,
	}
	for _, p := range DefaultSkipPatterns {
		e.skip[p] = true
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.gitignore {
		gi, err := ignore.CompileIgnoreFile(filepath.Join(abs, ".gitignore"))
		switch {
		case err == nil:
			e.ignore = gi
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("load .gitignore: %w", err)
		}
	}

	return e, nil
}

// Files returns root-relative slash paths of regular files matching pattern,
// sorted lexically. pattern may be absolute as long as it lies under the root.
func (e *Enumerator) Files(pattern string) ([]string, error) {
	rel, err := e.relPattern(pattern)
	if err != nil {
		return nil, err
	}
	if !doublestar.ValidatePattern(rel) {
		return nil, fmt.Errorf("enumerate %q: %w", pattern, doublestar.ErrBadPattern)
	}

	matches, err := doublestar.Glob(os.DirFS(e.root), rel, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("enumerate %q: %w", pattern, err)
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		if e.skipped(m) {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)

	return files, nil
}

func (e *Enumerator) relPattern(pattern string) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("enumerate: empty pattern: %w", doublestar.ErrBadPattern)
	}

	if filepath.IsAbs(pattern) {
		rel, err := filepath.Rel(e.root, pattern)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", fmt.Errorf("%w: %s", ErrOutsideRoot, pattern)
		}
		pattern = rel
	}

	pattern = filepath.ToSlash(pattern)
	for strings.HasPrefix(pattern, "./") {
		pattern = pattern[2:]
	}
	return pattern, nil
}

func (e *Enumerator) skipped(rel string) bool {
	dirs := strings.Split(rel, "/")
	for _, d := range dirs[:len(dirs)-1] {
		if e.skip[d] {
			return true
		}
	}
	return e.ignore != nil && e.ignore.MatchesPath(rel)
}
