// Package snapshot builds the test inventory of one source-tree revision.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/specvital/testdiff/pkg/decorator"
	"github.com/specvital/testdiff/pkg/domain"
	"github.com/specvital/testdiff/pkg/parser/strategies"
	"github.com/specvital/testdiff/pkg/parser/visitor"
)

const (
	// DefaultTimeout is the default build timeout.
	DefaultTimeout = 5 * time.Minute
	// MaxWorkers is the maximum number of concurrent workers allowed.
	MaxWorkers = 1024
	// DefaultMaxFileSize is the default maximum file size (10MB).
	DefaultMaxFileSize = 10 * 1024 * 1024
)

var (
	// ErrBuildCancelled is returned when the build is cancelled via context.
	ErrBuildCancelled = errors.New("snapshot: build cancelled")
	// ErrBuildTimeout is returned when the build exceeds its timeout.
	ErrBuildTimeout = errors.New("snapshot: build timeout")
	// ErrFileTooLarge is wrapped by the ParseFailure of an oversized file.
	ErrFileTooLarge = errors.New("file too large")
)

// Source opens files by root-relative path.
type Source interface {
	Open(ctx context.Context, rel string) (io.ReadCloser, error)
}

// Provider turns source text into a syntax tree.
type Provider interface {
	Parse(ctx context.Context, source []byte, filename string) (visitor.Tree, error)
}

// Result is the outcome of a Build.
type Result struct {
	// Snapshot holds the ordered FullName sequences.
	Snapshot domain.Snapshot
	// Tree holds every record of the revision, for rendering.
	Tree *decorator.Decorator
	// Records holds the extracted records in file-scan order.
	Records []domain.TestRecord
}

// Aggregator extracts tests from a list of files into a Snapshot.
type Aggregator struct {
	extractor strategies.Strategy
	options   *Options
	provider  Provider
	src       Source
}

// NewAggregator creates an aggregator reading from src.
func NewAggregator(src Source, provider Provider, extractor strategies.Strategy, opts ...Option) *Aggregator {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	applyDefaults(options)

	return &Aggregator{
		extractor: extractor,
		options:   options,
		provider:  provider,
		src:       src,
	}
}

// Build parses files in parallel and folds the results in the given order.
// The first ParseFailure aborts the build and cancels pending files.
func (a *Aggregator) Build(ctx context.Context, files []string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, a.options.Timeout)
	defer cancel()

	perFile, err := a.extractParallel(ctx, files)
	if err != nil {
		// A ParseFailure cancels only the group context, so a done ctx
		// means the caller cancelled or the timeout fired.
		if ctxErr := ctx.Err(); ctxErr != nil {
			if errors.Is(ctxErr, context.DeadlineExceeded) {
				return nil, ErrBuildTimeout
			}
			return nil, ErrBuildCancelled
		}
		return nil, err
	}

	return a.fold(ctx, files, perFile), nil
}

func (a *Aggregator) decoratorOptions() []decorator.Option {
	if a.options.FileNames {
		return []decorator.Option{decorator.WithFileNames()}
	}
	return nil
}

func (a *Aggregator) fold(ctx context.Context, files []string, perFile [][]domain.TestRecord) *Result {
	result := &Result{
		Snapshot: domain.Snapshot{
			Files:   make([]string, 0, len(files)),
			Skipped: []string{},
			Tests:   []string{},
		},
		Tree: decorator.New(a.decoratorOptions()...),
	}

	for i, file := range files {
		records := perFile[i]

		fileTree := decorator.New(a.decoratorOptions()...)
		fileTree.Append(records...)

		result.Snapshot.Files = append(result.Snapshot.Files, file)
		result.Snapshot.Tests = append(result.Snapshot.Tests, fileTree.FullNames()...)
		result.Snapshot.Skipped = append(result.Snapshot.Skipped, fileTree.SkippedFullNames()...)
		result.Tree.Append(records...)
		result.Records = append(result.Records, records...)

		slog.DebugContext(ctx, "extracted tests",
			"path", file,
			"count", fileTree.Count(),
			"tests", fileTree.TestNames(),
		)
	}

	return result
}

func (a *Aggregator) extractParallel(ctx context.Context, files []string) ([][]domain.TestRecord, error) {
	workers := a.options.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}

	sem := semaphore.NewWeighted(int64(workers))
	g, gCtx := errgroup.WithContext(ctx)

	// Each goroutine owns one slot, so results land in scan order without locking.
	perFile := make([][]domain.TestRecord, len(files))

	for i, file := range files {
		g.Go(func() error {
			if err := sem.Acquire(gCtx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			records, err := a.extractFile(gCtx, file)
			if err != nil {
				return err
			}
			perFile[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return perFile, nil
}

func (a *Aggregator) extractFile(ctx context.Context, path string) ([]domain.TestRecord, error) {
	content, err := a.readFile(ctx, path)
	if err != nil {
		return nil, err
	}

	tree, err := a.provider.Parse(ctx, content, path)
	if err != nil {
		var pf *domain.ParseFailure
		if !errors.As(err, &pf) {
			err = domain.NewParseFailure(path, err)
		}
		return nil, err
	}
	defer tree.Close()

	records := a.extractor.Extract(tree.Root())
	for i := range records {
		records[i].File = path
	}
	return records, nil
}

// readFile reads a file from the source, failing once MaxFileSize is exceeded.
func (a *Aggregator) readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := a.src.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	limit := a.options.MaxFileSize
	content, err := io.ReadAll(io.LimitReader(reader, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	if int64(len(content)) > limit {
		return nil, domain.NewParseFailure(path, fmt.Errorf("%w: exceeds %d bytes", ErrFileTooLarge, limit))
	}

	return content, nil
}
