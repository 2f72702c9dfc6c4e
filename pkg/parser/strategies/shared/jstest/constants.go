package jstest

const (
	FuncContext  = "context"
	FuncDescribe = "describe"
	FuncIt       = "it"
	FuncSpecify  = "specify"
	FuncSuite    = "suite"
	FuncTest     = "test"

	// codeceptjs declarations
	FuncFeature  = "Feature"
	FuncScenario = "Scenario"

	ModifierEach = "each"
	ModifierOnly = "only"
	ModifierSkip = "skip"
	ModifierTodo = "todo"

	// SkippedPrefix disables a declaration: xdescribe, xit, xScenario.
	SkippedPrefix = "x"
)
