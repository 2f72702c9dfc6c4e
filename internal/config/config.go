// Package config resolves run settings from defaults, a YAML file, an env
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/specvital/testdiff/pkg/compare"
)

// ErrInvalidConfig is wrapped by every validation and conversion failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all settings for a run.
type Config struct {
	// Workspace is the working tree root.
	Workspace string `yaml:"workspace"`
	// Tests is the glob selecting test files.
	Tests string `yaml:"tests"`
	// Framework selects the extractor.
	Framework string `yaml:"framework"`
	// BaseRef is the baseline revision.
	BaseRef string `yaml:"base"`
	// FileNames prefixes FullNames with the file path.
	FileNames bool `yaml:"fileNames"`
	// Workers bounds parallel parsing. Zero uses GOMAXPROCS.
	Workers int `yaml:"workers"`
	// ListingThreshold switches the listing to suites only above this many tests.
	ListingThreshold int `yaml:"listingThreshold"`
	// Gitignore filters test files by the workspace .gitignore.
	Gitignore bool `yaml:"gitignore"`
	// MaxFileSize bounds a single test file in bytes. Zero uses the default.
	MaxFileSize int64 `yaml:"maxFileSize"`
}

// New returns a Config with defaults applied.
func New() *Config {
	return &Config{
		Workspace:        DefaultWorkspace,
		Framework:        DefaultFramework,
		BaseRef:          DefaultBaseRef,
		ListingThreshold: DefaultListingThreshold,
		Gitignore:        true,
	}
}

// Validate reports missing or out-of-range settings.
func (c *Config) Validate() error {
	switch {
	case c.Workspace == "":
		return fmt.Errorf("%w: workspace is required", ErrInvalidConfig)
	case c.Tests == "":
		return fmt.Errorf("%w: tests pattern is required", ErrInvalidConfig)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	case c.ListingThreshold < 0:
		return fmt.Errorf("%w: listing threshold must not be negative, got %d", ErrInvalidConfig, c.ListingThreshold)
	case c.MaxFileSize < 0:
		return fmt.Errorf("%w: max file size must not be negative, got %d", ErrInvalidConfig, c.MaxFileSize)
	}
	return nil
}

// CompareOptions converts the config for the comparator. The workspace is made absolute.
func (c *Config) CompareOptions() (compare.Options, error) {
	root, err := filepath.Abs(c.Workspace)
	if err != nil {
		return compare.Options{}, fmt.Errorf("resolve workspace %s: %w", c.Workspace, err)
	}

	return compare.Options{
		Root:             root,
		Pattern:          c.Tests,
		Framework:        c.Framework,
		BaseRef:          c.BaseRef,
		FileNames:        c.FileNames,
		Gitignore:        c.Gitignore,
		Workers:          c.Workers,
		MaxFileSize:      c.MaxFileSize,
		ListingThreshold: c.ListingThreshold,
	}, nil
}
