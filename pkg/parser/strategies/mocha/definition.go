// Package mocha registers the block-style extractor for mocha suites.
package mocha

import (
	"github.com/specvital/testdiff/pkg/parser/framework"
	"github.com/specvital/testdiff/pkg/parser/strategies"
	"github.com/specvital/testdiff/pkg/parser/strategies/shared/jstest"
)

func init() {
	strategies.Register(NewDefinition())
}

// NewDefinition returns the mocha extractor: describe/context/suite groups
// with it/test/specify leaves.
func NewDefinition() *jstest.Extractor {
	return jstest.NewExtractor(framework.FrameworkMocha, jstest.BlockDialect())
}
