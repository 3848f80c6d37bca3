package dataset

import "errors"

// Sentinel errors for dataset operations.
var (
	ErrNotSelect          = errors.New("only SELECT queries are allowed")
	ErrMultipleStatements = errors.New("only a single statement is allowed")
	ErrEmptyQuery         = errors.New("query is empty")
	ErrUnknownTable       = errors.New("unknown table")
	ErrUnsupportedDriver  = errors.New("unsupported driver")
)
