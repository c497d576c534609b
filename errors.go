package tsqlschema

import "errors"

// Common errors used throughout the tsqlschema package
var (
	// ErrInvalidSQL is the root of every statement parsing failure.
	// Parser errors wrap it so callers can test with errors.Is.
	ErrInvalidSQL = errors.New("invalid SQL")

	// ErrConfigValidation is returned when configuration validation fails
	ErrConfigValidation = errors.New("configuration validation failed")
)
