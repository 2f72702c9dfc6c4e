// Package decorator arranges test records into a suite tree and renders views of it.
package decorator

import (
	"strings"

	"github.com/specvital/testdiff/pkg/domain"
)

// DefaultListingThreshold is the leaf count above which Listing falls back
// to the suite-only view.
const DefaultListingThreshold = 900

const indent = "  "

// Option configures a Decorator.
type Option func(*Decorator)

// WithFileNames makes each record's file the outermost path segment.
func WithFileNames() Option {
	return func(d *Decorator) {
		d.withFileNames = true
	}
}

// Decorator accumulates test records into a tree of suites.
// It is not safe for concurrent use.
type Decorator struct {
	root          *suiteNode
	count         int
	suites        int
	withFileNames bool
}

type suiteKey struct {
	name    string
	skipped bool
}

type suiteNode struct {
	children map[suiteKey]*suiteNode
	entries  []entry
	name     string
	skipped  bool
}

// entry is either a child suite or a test; one ordered list keeps
// declaration order across both kinds.
type entry struct {
	suite *suiteNode
	test  *testLeaf
}

type testLeaf struct {
	name    string
	skipped bool
	status  domain.TestStatus
}

// New creates an empty Decorator.
func New(opts ...Option) *Decorator {
	d := &Decorator{root: newSuiteNode("", false)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func newSuiteNode(name string, skipped bool) *suiteNode {
	return &suiteNode{
		children: make(map[suiteKey]*suiteNode),
		name:     name,
		skipped:  skipped,
	}
}

// Append inserts records as leaves under their suite paths, creating
// intermediate suites as needed.
func (d *Decorator) Append(records ...domain.TestRecord) {
	for _, r := range records {
		node := d.root
		if d.withFileNames && r.File != "" {
			node = d.child(node, domain.SuiteFrame{Name: r.File})
		}
		for _, frame := range r.Suites {
			node = d.child(node, frame)
		}

		node.entries = append(node.entries, entry{test: &testLeaf{
			name:    r.Name,
			skipped: r.Skipped || node.skipped,
			status:  r.Status,
		}})
		d.count++
	}
}

func (d *Decorator) child(parent *suiteNode, frame domain.SuiteFrame) *suiteNode {
	key := suiteKey{name: frame.Name, skipped: frame.Skipped}
	if existing, ok := parent.children[key]; ok {
		return existing
	}

	node := newSuiteNode(frame.Name, frame.Skipped || parent.skipped)
	parent.children[key] = node
	parent.entries = append(parent.entries, entry{suite: node})
	d.suites++
	return node
}

// Count returns the number of appended tests.
func (d *Decorator) Count() int {
	return d.count
}

// SuiteCount returns the number of distinct suites in the tree.
func (d *Decorator) SuiteCount() int {
	return d.suites
}

// FullNames returns the FullName of every test, depth first in declaration order.
func (d *Decorator) FullNames() []string {
	return d.collect(func(*testLeaf) bool { return true })
}

// SkippedFullNames returns FullNames of skipped tests in the same order as FullNames.
func (d *Decorator) SkippedFullNames() []string {
	return d.collect(func(t *testLeaf) bool { return t.skipped })
}

// TestNames returns the test labels without their suite paths.
func (d *Decorator) TestNames() []string {
	names := make([]string, 0, d.count)
	d.walk(func(path []string, e entry) {
		if e.test != nil {
			names = append(names, e.test.name)
		}
	})
	return names
}

func (d *Decorator) collect(keep func(*testLeaf) bool) []string {
	names := make([]string, 0, d.count)
	d.walk(func(path []string, e entry) {
		if e.test == nil || !keep(e.test) {
			return
		}
		names = append(names, joinPath(path, e.test.name))
	})
	return names
}

// RenderNestedList renders the tree as a nested markdown list. Suites are
// bold and skipped entries are struck through.
func (d *Decorator) RenderNestedList() string {
	var b strings.Builder
	d.walk(func(path []string, e entry) {
		b.WriteString(strings.Repeat(indent, len(path)))
		b.WriteString("- ")
		switch {
		case e.suite != nil:
			b.WriteString(mark("**"+e.suite.name+"**", e.suite.skipped))
		default:
			b.WriteString(mark(e.test.name, e.test.skipped))
		}
		b.WriteByte('\n')
	})
	return b.String()
}

// RenderSuiteList returns the full path of every suite, deduplicated, in traversal order.
func (d *Decorator) RenderSuiteList() []string {
	seen := make(map[string]bool, d.suites)
	suites := make([]string, 0, d.suites)
	d.walk(func(path []string, e entry) {
		if e.suite == nil {
			return
		}
		full := joinPath(path, e.suite.name)
		if seen[full] {
			return
		}
		seen[full] = true
		suites = append(suites, full)
	})
	return suites
}

// Listing renders the nested list, or the suite list when the tree holds
// more than threshold tests. A non-positive threshold uses DefaultListingThreshold.
func (d *Decorator) Listing(threshold int) string {
	if threshold <= 0 {
		threshold = DefaultListingThreshold
	}
	if d.count <= threshold {
		return d.RenderNestedList()
	}

	var b strings.Builder
	for _, suite := range d.RenderSuiteList() {
		b.WriteString("- ")
		b.WriteString(suite)
		b.WriteByte('\n')
	}
	return b.String()
}

// walk visits every entry depth first. path holds the names of the
// enclosing suites and must not be retained by fn.
func (d *Decorator) walk(fn func(path []string, e entry)) {
	type frame struct {
		node *suiteNode
		next int
	}

	stack := []frame{{node: d.root}}
	var path []string

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.node.entries) {
			stack = stack[:len(stack)-1]
			if len(path) > 0 && len(stack) > 0 {
				path = path[:len(path)-1]
			}
			continue
		}

		e := top.node.entries[top.next]
		top.next++
		fn(path, e)

		if e.suite != nil {
			path = append(path, e.suite.name)
			stack = append(stack, frame{node: e.suite})
		}
	}
}

func joinPath(path []string, name string) string {
	if len(path) == 0 {
		return name
	}
	return strings.Join(path, domain.FullNameSeparator) + domain.FullNameSeparator + name
}

func mark(label string, skipped bool) string {
	if skipped {
		return "~~" + label + "~~"
	}
	return label
}
