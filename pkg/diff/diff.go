// Package diff compares two test inventories as multisets of FullNames.
package diff

import "github.com/specvital/testdiff/pkg/domain"

// Compare matches baseline against current, counting multiplicity.
//
// For each name the first min(b, c) occurrences are common. Remaining
// occurrences in current are added and remaining occurrences in baseline are
// missing. Common and Missing follow baseline order, Added follows current
// order, so Compare(a, b).Added equals Compare(b, a).Missing.
func Compare(baseline, current []string) domain.DiffResult {
	available := counts(current)
	matched := make(map[string]int, len(available))

	result := domain.DiffResult{
		Added:   []string{},
		Common:  []string{},
		Missing: []string{},
	}

	for _, name := range baseline {
		if available[name] > 0 {
			available[name]--
			matched[name]++
			result.Common = append(result.Common, name)
			continue
		}
		result.Missing = append(result.Missing, name)
	}

	for _, name := range current {
		if matched[name] > 0 {
			matched[name]--
			continue
		}
		result.Added = append(result.Added, name)
	}

	return result
}

// CompareSnapshots diffs the test lists and the skipped lists of two snapshots.
func CompareSnapshots(baseline, current domain.Snapshot) (tests, skipped domain.DiffResult) {
	return Compare(baseline.Tests, current.Tests), Compare(baseline.Skipped, current.Skipped)
}

func counts(names []string) map[string]int {
	m := make(map[string]int, len(names))
	for _, n := range names {
		m[n]++
	}
	return m
}
