// Package codeceptjs registers the scenario-style extractor for codeceptjs.
package codeceptjs

import (
	"github.com/specvital/testdiff/pkg/parser/framework"
	"github.com/specvital/testdiff/pkg/parser/strategies"
	"github.com/specvital/testdiff/pkg/parser/strategies/shared/jstest"
)

func init() {
	strategies.Register(NewDefinition())
}

func NewDefinition() *jstest.Extractor {
	return jstest.NewExtractor(framework.FrameworkCodeceptJS, jstest.ScenarioDialect(), "codecept")
}
