// Package all imports all extraction strategies for side-effect registration.
// Usage: _ "github.com/specvital/testdiff/pkg/parser/strategies/all"
package all

import (
	_ "github.com/specvital/testdiff/pkg/parser/strategies/codeceptjs"
	_ "github.com/specvital/testdiff/pkg/parser/strategies/cypress"
	_ "github.com/specvital/testdiff/pkg/parser/strategies/mocha"
)
