package domain

import (
	"errors"
	"fmt"
)

// ErrBaselineUnavailable is returned when the baseline revision cannot be reached.
var ErrBaselineUnavailable = errors.New("baseline revision unavailable")

// ParseFailure reports a file whose source could not be turned into a syntax tree.
type ParseFailure struct {
	Err  error
	Path string
}

// NewParseFailure wraps err with the originating file path.
func NewParseFailure(path string, err error) *ParseFailure {
	return &ParseFailure{Err: err, Path: path}
}

func (e *ParseFailure) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("parse %s: failed", e.Path)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseFailure) Unwrap() error {
	return e.Err
}
