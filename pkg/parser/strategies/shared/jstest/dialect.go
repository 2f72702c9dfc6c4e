// Package jstest holds the declaration vocabularies of JavaScript test frameworks.
package jstest

import (
	"github.com/specvital/testdiff/pkg/domain"
	"github.com/specvital/testdiff/pkg/parser/visitor"
)

// BlockDialect returns the mocha/cypress vocabulary: suites nest through
// callback bodies and tests are leaves inside them.
func BlockDialect() visitor.Dialect {
	return visitor.Dialect{
		Groups:            set(FuncDescribe, FuncContext, FuncSuite),
		Leaves:            set(FuncIt, FuncTest, FuncSpecify),
		SkipQualifiers:    set(ModifierSkip),
		FocusQualifiers:   set(ModifierOnly),
		NeutralQualifiers: set(ModifierEach),
		SkipPrefix:        SkippedPrefix,
	}
}

// ScenarioDialect returns the codeceptjs vocabulary: a Feature call names
// the suite for every Scenario that follows it in the file.
// Scenario.todo is reported as skipped, as codeceptjs does at run time.
func ScenarioDialect() visitor.Dialect {
	return visitor.Dialect{
		Groups:          set(FuncFeature),
		Leaves:          set(FuncScenario),
		SkipQualifiers:  set(ModifierSkip, ModifierTodo),
		FocusQualifiers: set(ModifierOnly),
		SkipPrefix:      SkippedPrefix,
		FlatGroups:      true,
	}
}

// Extractor implements strategies.Strategy for a fixed dialect.
type Extractor struct {
	aliases []string
	dialect visitor.Dialect
	name    string
}

// NewExtractor creates an extractor named name using dialect.
func NewExtractor(name string, dialect visitor.Dialect, aliases ...string) *Extractor {
	return &Extractor{
		aliases: aliases,
		dialect: dialect,
		name:    name,
	}
}

func (e *Extractor) Name() string { return e.name }

func (e *Extractor) Aliases() []string { return e.aliases }

// Extract walks root and returns its test records in declaration order.
func (e *Extractor) Extract(root visitor.Node) []domain.TestRecord {
	return visitor.Visit(root, e.dialect)
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
