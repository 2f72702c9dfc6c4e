package domain

// TestStatus represents the modifier written at a declaration site.
type TestStatus string

const (
	// TestStatusActive indicates a plain declaration.
	TestStatusActive TestStatus = "active"
	// TestStatusSkipped indicates a declaration disabled via .skip or an x-prefix.
	TestStatusSkipped TestStatus = "skipped"
	// TestStatusFocused indicates a debugging-only declaration (.only).
	// Focused tests stay in the inventory; siblings are not excluded.
	TestStatusFocused TestStatus = "focused"
)
