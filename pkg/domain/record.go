package domain

import "strings"

// FullNameSeparator joins suite names and the test name into a FullName.
const FullNameSeparator = " > "

// DynamicNamePlaceholder replaces a suite or test name that is not a static
// string literal. The declaration is still recorded so coverage changes stay visible.
const DynamicNamePlaceholder = "<dynamic>"

// SuiteFrame is a grouping declaration enclosing a test.
type SuiteFrame struct {
	Name    string `json:"name"`
	Skipped bool   `json:"skipped,omitempty"`
}

// TestRecord is one discovered test case.
type TestRecord struct {
	// File is the root-relative source path. Set by the aggregator.
	File string `json:"file,omitempty"`
	// Name is the label as written at the declaration site.
	Name string `json:"name"`
	// Skipped is true when the declaration or any enclosing suite is disabled.
	Skipped bool `json:"skipped"`
	// Status is the modifier of the declaration itself.
	Status TestStatus `json:"status"`
	// Suites lists the enclosing grouping declarations, outermost first.
	Suites []SuiteFrame `json:"suites,omitempty"`
}

// SuitePath returns the enclosing suite names, outermost first.
func (r TestRecord) SuitePath() []string {
	path := make([]string, len(r.Suites))
	for i, s := range r.Suites {
		path[i] = s.Name
	}
	return path
}

// FullName joins the suite path and name. When withFile is set the file
// path becomes the leading segment.
func (r TestRecord) FullName(withFile bool) string {
	parts := make([]string, 0, len(r.Suites)+2)
	if withFile && r.File != "" {
		parts = append(parts, r.File)
	}
	parts = append(parts, r.SuitePath()...)
	parts = append(parts, r.Name)
	return strings.Join(parts, FullNameSeparator)
}
