package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/specvital/testdiff/pkg/domain"
)

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		baseline []string
		current  []string
		want     domain.DiffResult
	}{
		{
			name:     "renamed test",
			baseline: []string{"A > t1", "A > t2"},
			current:  []string{"A > t1", "A > t3"},
			want: domain.DiffResult{
				Added:   []string{"A > t3"},
				Common:  []string{"A > t1"},
				Missing: []string{"A > t2"},
			},
		},
		{
			name:     "duplicate removed",
			baseline: []string{"A > t1", "A > t1"},
			current:  []string{"A > t1"},
			want: domain.DiffResult{
				Added:   []string{},
				Common:  []string{"A > t1"},
				Missing: []string{"A > t1"},
			},
		},
		{
			name:     "duplicate added",
			baseline: []string{"A > t1"},
			current:  []string{"B > t0", "A > t1", "A > t1", "A > t1"},
			want: domain.DiffResult{
				Added:   []string{"B > t0", "A > t1", "A > t1"},
				Common:  []string{"A > t1"},
				Missing: []string{},
			},
		},
		{
			name:     "empty baseline",
			baseline: nil,
			current:  []string{"A > t1", "A > t2"},
			want: domain.DiffResult{
				Added:   []string{"A > t1", "A > t2"},
				Common:  []string{},
				Missing: []string{},
			},
		},
		{
			name:     "both empty",
			baseline: nil,
			current:  nil,
			want: domain.DiffResult{
				Added:   []string{},
				Common:  []string{},
				Missing: []string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Compare(tt.baseline, tt.current)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompare_Identity(t *testing.T) {
	t.Parallel()

	s := []string{"A > t1", "A > t2", "A > t1", "B > t1"}

	got := Compare(s, s)

	assert.Empty(t, got.Added)
	assert.Empty(t, got.Missing)
	assert.Equal(t, s, got.Common)
	assert.False(t, got.HasChanges())
}

func TestCompare_Symmetry(t *testing.T) {
	t.Parallel()

	pairs := [][2][]string{
		{{"A > t1", "A > t2"}, {"A > t1", "A > t3"}},
		{{"x", "x", "y"}, {"y", "x", "z", "z"}},
		{{}, {"a", "b", "a"}},
		{{"a", "b", "c", "b", "a"}, {"c", "c", "b"}},
	}

	for _, p := range pairs {
		a, b := p[0], p[1]

		forward := Compare(a, b)
		backward := Compare(b, a)

		assert.Equal(t, forward.Added, backward.Missing, "added(a,b) vs missing(b,a) for %v %v", a, b)
		assert.Equal(t, forward.Missing, backward.Added, "missing(a,b) vs added(b,a) for %v %v", a, b)
		assert.Len(t, backward.Common, len(forward.Common))
	}
}

func TestCompareSnapshots(t *testing.T) {
	t.Parallel()

	baseline := domain.Snapshot{
		Files:   []string{"login.spec.js"},
		Tests:   []string{"Login > succeeds", "Login > fails on bad password"},
		Skipped: []string{"Login > fails on bad password"},
	}
	current := domain.Snapshot{
		Files:   []string{"login.spec.js"},
		Tests:   []string{"Login > succeeds", "Login > fails on bad password", "Login > locks account"},
		Skipped: []string{},
	}

	tests, skipped := CompareSnapshots(baseline, current)

	assert.Equal(t, []string{"Login > locks account"}, tests.Added)
	assert.Empty(t, tests.Missing)
	assert.Empty(t, skipped.Added)
	assert.Equal(t, []string{"Login > fails on bad password"}, skipped.Missing)
}
