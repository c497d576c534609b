package main

import "errors"

// Sentinel errors for command operations
var (
	ErrInputFileNotExist = errors.New("input file does not exist")
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrStatementsFailed  = errors.New("some statements failed to parse")
)
