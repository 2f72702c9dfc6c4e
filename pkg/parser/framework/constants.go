// Package framework holds the framework names understood by the extractors.
package framework

// Framework names as constants to ensure consistency.
const (
	FrameworkCodeceptJS = "codeceptjs"
	FrameworkCypress    = "cypress"
	FrameworkMocha      = "mocha"
)
