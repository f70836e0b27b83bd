// Package internalerr holds the sentinel errors shared by the rake packages.
// Callers match them with errors.Is; wrapping adds the context.
package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrUnknownLanguage  = errors.New("unknown stopword language")
	ErrEmptyDocument    = errors.New("empty document")
)
