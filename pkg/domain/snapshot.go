package domain

// Snapshot is the test inventory of one source-tree revision.
// Order follows file-scan order, then declaration order.
type Snapshot struct {
	// Files contains the scanned file paths.
	Files []string `json:"files"`
	// Skipped contains the FullNames of skipped tests.
	Skipped []string `json:"skipped"`
	// Tests contains the FullNames of all tests, skipped ones included.
	Tests []string `json:"tests"`
}

// CountTests returns the total number of tests.
func (s Snapshot) CountTests() int {
	return len(s.Tests)
}

// CountFiles returns the number of scanned files.
func (s Snapshot) CountFiles() int {
	return len(s.Files)
}

// DiffResult is the multiset comparison of two FullName sequences.
type DiffResult struct {
	// Added holds occurrences present in current beyond those in baseline.
	Added []string `json:"added"`
	// Common holds occurrences present in both.
	Common []string `json:"common"`
	// Missing holds occurrences present in baseline beyond those in current.
	Missing []string `json:"missing"`
}

// HasChanges reports whether anything was added or removed.
func (d DiffResult) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Missing) > 0
}
