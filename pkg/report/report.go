// Package report renders the outcome of a revision comparison.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/specvital/testdiff/pkg/domain"
)

// Report is the comparison outcome handed to renderers.
type Report struct {
	// Framework is the resolved extractor name.
	Framework string `json:"framework"`
	// TotalTests is the number of tests in the current revision.
	TotalTests int `json:"totalTests"`
	// TotalFiles is the number of scanned files in the current revision.
	TotalFiles int `json:"totalFiles"`
	// Tests diffs all tests between baseline and current.
	Tests domain.DiffResult `json:"tests"`
	// Skipped diffs skipped tests between baseline and current.
	Skipped domain.DiffResult `json:"skipped"`
	// Listing is the rendered current test tree.
	Listing string `json:"listing"`
	// BaselineMissing is set when the baseline could not be computed and was treated as empty.
	BaselineMissing bool `json:"baselineMissing,omitempty"`
}

// AddedCount returns the number of added tests.
func (r *Report) AddedCount() int {
	return len(r.Tests.Added)
}

// MissingCount returns the number of removed tests.
func (r *Report) MissingCount() int {
	return len(r.Tests.Missing)
}

// Summary returns the one-line change summary followed by the total.
func (r *Report) Summary() string {
	return fmt.Sprintf("Added %d %s, removed %d %s\nTotal %d %s",
		r.AddedCount(), plural(r.AddedCount(), "test"),
		r.MissingCount(), plural(r.MissingCount(), "test"),
		r.TotalTests, plural(r.TotalTests, "test"),
	)
}

// WriteMarkdown writes the report as a markdown document.
func (r *Report) WriteMarkdown(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "## Test changes\n\n")
	fmt.Fprintf(&b, "**%d** %s in **%d** %s (%s)",
		r.TotalTests, plural(r.TotalTests, "test"),
		r.TotalFiles, plural(r.TotalFiles, "file"),
		r.Framework,
	)
	fmt.Fprintf(&b, ": %d added, %d removed\n\n", r.AddedCount(), r.MissingCount())

	if r.BaselineMissing {
		b.WriteString("> Baseline revision could not be analyzed; every test is reported as added.\n\n")
	}

	if !r.Tests.HasChanges() && !r.Skipped.HasChanges() {
		b.WriteString("No test changes.\n\n")
	}

	writeSection(&b, "Added tests", r.Tests.Added)
	writeSection(&b, "Removed tests", r.Tests.Missing)
	writeSection(&b, "Newly skipped tests", r.Skipped.Added)
	writeSection(&b, "Removed from skipped", r.Skipped.Missing)

	if r.Listing != "" {
		b.WriteString("<details>\n<summary>All tests</summary>\n\n")
		b.WriteString(r.Listing)
		if !strings.HasSuffix(r.Listing, "\n") {
			b.WriteByte('\n')
		}
		b.WriteString("\n</details>\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSection(b *strings.Builder, title string, names []string) {
	if len(names) == 0 {
		return
	}

	fmt.Fprintf(b, "### %s (%d)\n\n", title, len(names))
	for _, n := range names {
		fmt.Fprintf(b, "- %s\n", n)
	}
	b.WriteByte('\n')
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
