package labtests

import "errors"

var (
	// ErrTestNotFound is returned when a test id is not in the catalog.
	ErrTestNotFound = errors.New("labtests: test not found")

	// ErrInvalidFilter is returned for unparseable filter values.
	ErrInvalidFilter = errors.New("labtests: invalid filter")
)
