// Package compare diffs the test inventory of the working tree against a baseline revision.
package compare

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/specvital/testdiff/pkg/decorator"
	"github.com/specvital/testdiff/pkg/diff"
	"github.com/specvital/testdiff/pkg/domain"
	"github.com/specvital/testdiff/pkg/parser/jsast"
	"github.com/specvital/testdiff/pkg/parser/strategies"
	"github.com/specvital/testdiff/pkg/report"
	"github.com/specvital/testdiff/pkg/snapshot"
	"github.com/specvital/testdiff/pkg/source"
)

// DefaultBaseRef is the baseline compared against when none is configured.
const DefaultBaseRef = "HEAD^"

// Switcher moves the working tree between revisions.
type Switcher interface {
	// Head returns a ref that Checkout can restore later.
	Head(ctx context.Context) (string, error)
	Checkout(ctx context.Context, ref string) error
}

// Options configures a Comparator.
type Options struct {
	// Root is the working tree directory.
	Root string
	// Pattern selects test files, relative to Root or absolute under it.
	Pattern string
	// Framework selects the extractor. Unknown names use the block-style default.
	Framework string
	// BaseRef is the baseline revision. Empty uses DefaultBaseRef.
	BaseRef string
	// FileNames prefixes FullNames with the file path.
	FileNames bool
	// Gitignore filters enumerated files by the root .gitignore.
	Gitignore bool
	// Workers bounds parallel parsing. Zero uses GOMAXPROCS.
	Workers int
	// MaxFileSize bounds a single file. Zero uses the aggregator default.
	MaxFileSize int64
	// ListingThreshold switches the listing to suites only above this many tests.
	ListingThreshold int
}

// Comparator runs a two-revision comparison.
type Comparator struct {
	provider snapshot.Provider
	registry *strategies.Registry
	switcher Switcher
	opts     Options
}

// New creates a Comparator. A nil registry uses the default registry.
func New(opts Options, switcher Switcher, registry *strategies.Registry) *Comparator {
	if opts.BaseRef == "" {
		opts.BaseRef = DefaultBaseRef
	}
	if opts.ListingThreshold <= 0 {
		opts.ListingThreshold = decorator.DefaultListingThreshold
	}
	if registry == nil {
		registry = strategies.DefaultRegistry()
	}

	return &Comparator{
		provider: jsast.NewProvider(),
		registry: registry,
		switcher: switcher,
		opts:     opts,
	}
}

// Inventory extracts the tests of the working tree as it is.
func (c *Comparator) Inventory(ctx context.Context) (*snapshot.Result, strategies.Strategy, error) {
	extractor, err := c.extractor()
	if err != nil {
		return nil, nil, err
	}

	result, err := c.build(ctx, extractor)
	if err != nil {
		return nil, nil, fmt.Errorf("current revision: %w", err)
	}
	return result, extractor, nil
}

// Run builds the current inventory, switches to the baseline, builds it,
// restores the original ref and diffs the two.
//
// An unreachable or unparsable baseline is treated as empty. Failing to
// restore the original ref is an error.
func (c *Comparator) Run(ctx context.Context) (*report.Report, error) {
	current, extractor, err := c.Inventory(ctx)
	if err != nil {
		return nil, err
	}

	baseline, missing, err := c.baseline(ctx, extractor)
	if err != nil {
		return nil, err
	}

	tests, skipped := diff.CompareSnapshots(baseline, current.Snapshot)

	r := &report.Report{
		Framework:       extractor.Name(),
		TotalTests:      current.Snapshot.CountTests(),
		TotalFiles:      current.Snapshot.CountFiles(),
		Tests:           tests,
		Skipped:         skipped,
		Listing:         current.Tree.Listing(c.opts.ListingThreshold),
		BaselineMissing: missing,
	}

	slog.InfoContext(ctx, "compared revisions",
		"framework", r.Framework,
		"base", c.opts.BaseRef,
		"added", r.AddedCount(),
		"removed", r.MissingCount(),
		"total", r.TotalTests,
	)

	return r, nil
}

func (c *Comparator) extractor() (strategies.Strategy, error) {
	extractor := c.registry.Resolve(c.opts.Framework)
	if extractor == nil {
		return nil, fmt.Errorf("no extractor registered for framework %q", c.opts.Framework)
	}
	if extractor.Name() != c.opts.Framework {
		slog.Debug("resolved framework", "requested", c.opts.Framework, "extractor", extractor.Name())
	}
	return extractor, nil
}

func (c *Comparator) baseline(ctx context.Context, extractor strategies.Strategy) (domain.Snapshot, bool, error) {
	head, err := c.switcher.Head(ctx)
	if err != nil {
		return c.emptyBaseline(ctx, err)
	}

	if err := c.switcher.Checkout(ctx, c.opts.BaseRef); err != nil {
		return c.emptyBaseline(ctx, err)
	}

	result, buildErr := c.build(ctx, extractor)

	// Restore even when ctx is done; the tree must not be left on the baseline.
	if err := c.switcher.Checkout(context.WithoutCancel(ctx), head); err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("restore %s: %w", head, err)
	}

	if buildErr != nil {
		return c.emptyBaseline(ctx, buildErr)
	}
	return result.Snapshot, false, nil
}

// emptyBaseline applies the fallback policy: an unreachable baseline or a
// baseline that fails to parse becomes an empty snapshot.
func (c *Comparator) emptyBaseline(ctx context.Context, err error) (domain.Snapshot, bool, error) {
	var pf *domain.ParseFailure
	if !errors.Is(err, domain.ErrBaselineUnavailable) && !errors.As(err, &pf) {
		return domain.Snapshot{}, false, fmt.Errorf("baseline revision: %w", err)
	}

	slog.WarnContext(ctx, "baseline treated as empty", "base", c.opts.BaseRef, "error", err)
	return domain.Snapshot{}, true, nil
}

func (c *Comparator) build(ctx context.Context, extractor strategies.Strategy) (*snapshot.Result, error) {
	src, err := source.NewLocalSource(c.opts.Root)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	enum, err := source.NewEnumerator(src.Root(), source.WithGitignore(c.opts.Gitignore))
	if err != nil {
		return nil, err
	}

	files, err := enum.Files(c.opts.Pattern)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "enumerated test files", "pattern", c.opts.Pattern, "count", len(files))

	agg := snapshot.NewAggregator(src, c.provider, extractor,
		snapshot.WithWorkers(c.opts.Workers),
		snapshot.WithFileNames(c.opts.FileNames),
		snapshot.WithMaxFileSize(c.opts.MaxFileSize),
	)
	return agg.Build(ctx, files)
}
