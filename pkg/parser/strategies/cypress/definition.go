// Package cypress registers the block-style extractor for cypress specs.
package cypress

import (
	"github.com/specvital/testdiff/pkg/parser/framework"
	"github.com/specvital/testdiff/pkg/parser/strategies"
	"github.com/specvital/testdiff/pkg/parser/strategies/shared/jstest"
)

func init() {
	strategies.Register(NewDefinition())
}

// NewDefinition returns the cypress extractor. Cypress bundles mocha, so
// specs share the block vocabulary.
func NewDefinition() *jstest.Extractor {
	return jstest.NewExtractor(framework.FrameworkCypress, jstest.BlockDialect(), "cypress.io", "cypressio")
}
