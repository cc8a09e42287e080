package relio

import (
	"errors"
	"fmt"
)

// Sentinel errors, wrapped with fmt.Errorf("%w: ...") at the call sites
// that can name the offending line/column/cell.
var (
	// ErrInvalidInput covers malformed CSV/JSON, unknown IO type, column
	// count mismatch, unquoted delimiters, unbalanced record brackets,
	// and unclosed quoted fields.
	ErrInvalidInput = errors.New("relio: invalid input")
	// ErrConfiguration covers option combinations that can never be
	// satisfied, such as an RFC-4180 delimiter containing a quote.
	ErrConfiguration = errors.New("relio: invalid configuration")
	// ErrIOFailure covers failures surfaced verbatim from the underlying
	// file or database layer.
	ErrIOFailure = errors.New("relio: io failure")
	// ErrTypeMismatch covers a cell failing to parse for its column's
	// type tag.
	ErrTypeMismatch = errors.New("relio: type mismatch")
	// ErrUnknownIO is returned for an IO= key the registry has no
	// factory for. It wraps ErrInvalidInput.
	ErrUnknownIO = fmt.Errorf("%w: unknown IO key", ErrInvalidInput)
)
