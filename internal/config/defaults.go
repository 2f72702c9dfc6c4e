package config

import (
	"github.com/specvital/testdiff/pkg/compare"
	"github.com/specvital/testdiff/pkg/decorator"
	"github.com/specvital/testdiff/pkg/parser/framework"
)

const (
	// DefaultWorkspace is the working tree when GITHUB_WORKSPACE is unset.
	DefaultWorkspace = "."
	// DefaultFramework is the extractor used when none is configured.
	DefaultFramework = framework.FrameworkMocha
	// DefaultBaseRef is the baseline revision.
	DefaultBaseRef = compare.DefaultBaseRef
	// DefaultListingThreshold is the test count above which only suites are listed.
	DefaultListingThreshold = decorator.DefaultListingThreshold
)

// Environment variables read by Load. TESTDIFF_* take precedence over the
// GitHub Actions INPUT_* names.
const (
	EnvGitHubWorkspace  = "GITHUB_WORKSPACE"
	EnvInputTests       = "INPUT_TESTS"
	EnvInputFramework   = "INPUT_FRAMEWORK"
	EnvInputBase        = "INPUT_BASE"
	EnvWorkspace        = "TESTDIFF_WORKSPACE"
	EnvTests            = "TESTDIFF_TESTS"
	EnvFramework        = "TESTDIFF_FRAMEWORK"
	EnvBase             = "TESTDIFF_BASE"
	EnvFileNames        = "TESTDIFF_FILE_NAMES"
	EnvWorkers          = "TESTDIFF_WORKERS"
	EnvListingThreshold = "TESTDIFF_LISTING_THRESHOLD"
	EnvGitignore        = "TESTDIFF_GITIGNORE"
	EnvMaxFileSize      = "TESTDIFF_MAX_FILE_SIZE"
)
