package snapshot_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/testdiff/pkg/domain"
	"github.com/specvital/testdiff/pkg/parser/jsast"
	"github.com/specvital/testdiff/pkg/parser/strategies"
	"github.com/specvital/testdiff/pkg/parser/visitor"
	"github.com/specvital/testdiff/pkg/snapshot"
	"github.com/specvital/testdiff/pkg/source"

	_ "github.com/specvital/testdiff/pkg/parser/strategies/all"
)

func newSource(t *testing.T, files map[string]string) *source.LocalSource {
	t.Helper()

	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	src, err := source.NewLocalSource(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })
	return src
}

func TestAggregator_Build(t *testing.T) {
	t.Parallel()

	t.Run("should build block-style snapshot", func(t *testing.T) {
		t.Parallel()

		src := newSource(t, map[string]string{
			"test/login.spec.js": `describe('Login', () => { it('succeeds', fn); it.skip('fails on bad password', fn); })`,
			"test/cart.spec.ts": `
describe('Cart', () => {
  it('adds items', () => {});
});
`,
		})
		agg := snapshot.NewAggregator(src, jsast.NewProvider(), strategies.Resolve("mocha"))

		result, err := agg.Build(context.Background(), []string{"test/login.spec.js", "test/cart.spec.ts"})

		require.NoError(t, err)
		assert.Equal(t, []string{"test/login.spec.js", "test/cart.spec.ts"}, result.Snapshot.Files)
		assert.Equal(t, []string{
			"Login > succeeds",
			"Login > fails on bad password",
			"Cart > adds items",
		}, result.Snapshot.Tests)
		assert.Equal(t, []string{"Login > fails on bad password"}, result.Snapshot.Skipped)
		assert.Equal(t, 3, result.Tree.Count())
		require.Len(t, result.Records, 3)
		assert.Equal(t, "test/cart.spec.ts", result.Records[2].File)
	})

	t.Run("should build scenario-style snapshot", func(t *testing.T) {
		t.Parallel()

		src := newSource(t, map[string]string{
			"login_test.js": `Feature('Login'); Scenario('can login', fn); Scenario.skip('cannot login twice', fn);`,
		})
		agg := snapshot.NewAggregator(src, jsast.NewProvider(), strategies.Resolve("codecept"))

		result, err := agg.Build(context.Background(), []string{"login_test.js"})

		require.NoError(t, err)
		assert.Equal(t, []string{"Login > can login", "Login > cannot login twice"}, result.Snapshot.Tests)
		assert.Equal(t, []string{"Login > cannot login twice"}, result.Snapshot.Skipped)
	})

	t.Run("should prefix file names", func(t *testing.T) {
		t.Parallel()

		src := newSource(t, map[string]string{
			"a.spec.js": `it('t1', () => {});`,
		})
		agg := snapshot.NewAggregator(src, jsast.NewProvider(), strategies.Resolve("mocha"), snapshot.WithFileNames(true))

		result, err := agg.Build(context.Background(), []string{"a.spec.js"})

		require.NoError(t, err)
		assert.Equal(t, []string{"a.spec.js > t1"}, result.Snapshot.Tests)
	})

	t.Run("should return empty snapshot for no files", func(t *testing.T) {
		t.Parallel()

		src := newSource(t, nil)
		agg := snapshot.NewAggregator(src, jsast.NewProvider(), strategies.Resolve("mocha"))

		result, err := agg.Build(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, result.Snapshot.Tests)
		assert.Empty(t, result.Snapshot.Files)
		assert.Zero(t, result.Tree.Count())
	})

	t.Run("should fail fast on malformed file", func(t *testing.T) {
		t.Parallel()

		src := newSource(t, map[string]string{
			"good.spec.js": `it('ok', () => {});`,
			"bad.spec.js":  `describe('x', () => { it('y', ) }}} ;;`,
		})
		agg := snapshot.NewAggregator(src, jsast.NewProvider(), strategies.Resolve("mocha"))

		result, err := agg.Build(context.Background(), []string{"good.spec.js", "bad.spec.js"})

		assert.Nil(t, result)
		var pf *domain.ParseFailure
		require.True(t, errors.As(err, &pf))
		assert.Equal(t, "bad.spec.js", pf.Path)
	})

	t.Run("should fail on oversized file", func(t *testing.T) {
		t.Parallel()

		src := newSource(t, map[string]string{
			"big.spec.js": `it('` + strings.Repeat("a", 200) + `', () => {});`,
		})
		agg := snapshot.NewAggregator(src, jsast.NewProvider(), strategies.Resolve("mocha"), snapshot.WithMaxFileSize(64))

		_, err := agg.Build(context.Background(), []string{"big.spec.js"})

		var pf *domain.ParseFailure
		require.True(t, errors.As(err, &pf))
		assert.ErrorIs(t, err, snapshot.ErrFileTooLarge)
	})

	t.Run("should fail on missing file", func(t *testing.T) {
		t.Parallel()

		src := newSource(t, nil)
		agg := snapshot.NewAggregator(src, jsast.NewProvider(), strategies.Resolve("mocha"))

		_, err := agg.Build(context.Background(), []string{"missing.spec.js"})

		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

// slowProvider wraps a provider and delays earlier files longer, so parallel
// completion order is the reverse of scan order.
type slowProvider struct {
	inner  snapshot.Provider
	delays map[string]time.Duration
	calls  atomic.Int32
}

func (p *slowProvider) Parse(ctx context.Context, source []byte, filename string) (visitor.Tree, error) {
	p.calls.Add(1)
	select {
	case <-time.After(p.delays[filename]):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return p.inner.Parse(ctx, source, filename)
}

func TestAggregator_Build_Order(t *testing.T) {
	t.Parallel()

	files := map[string]string{}
	delays := map[string]time.Duration{}
	var order []string
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("f%d.spec.js", i)
		files[name] = fmt.Sprintf(`describe('S%d', () => { it('t', () => {}); });`, i)
		delays[name] = time.Duration(8-i) * 5 * time.Millisecond
		order = append(order, name)
	}
	src := newSource(t, files)
	provider := &slowProvider{inner: jsast.NewProvider(), delays: delays}
	agg := snapshot.NewAggregator(src, provider, strategies.Resolve("mocha"), snapshot.WithWorkers(8))

	result, err := agg.Build(context.Background(), order)

	require.NoError(t, err)
	for i, name := range result.Snapshot.Tests {
		assert.Equal(t, fmt.Sprintf("S%d > t", i), name)
	}
	assert.Equal(t, order, result.Snapshot.Files)
	assert.EqualValues(t, 8, provider.calls.Load())
}

func TestAggregator_Build_Cancelled(t *testing.T) {
	t.Parallel()

	src := newSource(t, map[string]string{"a.spec.js": `it('t', () => {});`})
	provider := &slowProvider{inner: jsast.NewProvider(), delays: map[string]time.Duration{"a.spec.js": time.Second}}
	agg := snapshot.NewAggregator(src, provider, strategies.Resolve("mocha"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := agg.Build(ctx, []string{"a.spec.js"})

	assert.ErrorIs(t, err, snapshot.ErrBuildCancelled)
}

func TestAggregator_Build_Timeout(t *testing.T) {
	t.Parallel()

	src := newSource(t, map[string]string{"a.spec.js": `it('t', () => {});`})
	provider := &slowProvider{inner: jsast.NewProvider(), delays: map[string]time.Duration{"a.spec.js": time.Second}}
	agg := snapshot.NewAggregator(src, provider, strategies.Resolve("mocha"), snapshot.WithTimeout(10*time.Millisecond))

	_, err := agg.Build(context.Background(), []string{"a.spec.js"})

	assert.ErrorIs(t, err, snapshot.ErrBuildTimeout)
}
