package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrMissingColumn = errors.New("required column missing")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrNoVocabulary  = errors.New("no consolidation vocabulary loaded")
)
