// Package source provides access to a test-source tree rooted at an explicit directory.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotDirectory is returned when the root is not a directory.
	ErrNotDirectory = errors.New("source: root is not a directory")
	// ErrOutsideRoot is returned for paths that escape the root.
	ErrOutsideRoot = errors.New("source: path escapes root")
)

// Source reads files relative to a root directory.
type Source interface {
	// Root returns the absolute root path.
	Root() string
	// Open opens a file by its root-relative path.
	Open(ctx context.Context, rel string) (io.ReadCloser, error)
	// Close releases resources held by the source.
	Close() error
}

// LocalSource is a Source backed by the local filesystem.
type LocalSource struct {
	root string
}

var _ Source = (*LocalSource)(nil)

// NewLocalSource validates root and returns a source for it.
func NewLocalSource(root string) (*LocalSource, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat root %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}

	return &LocalSource{root: abs}, nil
}

func (s *LocalSource) Root() string {
	return s.root
}

// Open opens rel for reading. rel uses forward slashes.
func (s *LocalSource) Open(ctx context.Context, rel string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	local := filepath.FromSlash(rel)
	if !filepath.IsLocal(local) {
		return nil, fmt.Errorf("%w: %s", ErrOutsideRoot, rel)
	}

	f, err := os.Open(filepath.Join(s.root, local))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", rel, err)
	}
	return f, nil
}

// Rel converts an absolute path, or a path relative to the root, into a
// root-relative slash-separated path.
func (s *LocalSource) Rel(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.root, path)
	}

	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return "", fmt.Errorf("relative path for %s: %w", path, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	return filepath.ToSlash(rel), nil
}

func (s *LocalSource) Close() error {
	return nil
}
