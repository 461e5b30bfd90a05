package parser

// errors.go defines the error taxonomy shared by all four parsers.
//
// Two kinds of failure can come out of a parse:
//   - ValidationError: the input as a whole is unusable (empty payload,
//     no usable records, or a required marker row never appeared).
//   - ParseError: a specific row violates its format's grammar; it always
//     carries the 1-based line number of the offending row.
//
// Both abort the parse entirely. Parsers are pure functions, so neither
// error kind implies any storage mutation.

import (
	"errors"
	"fmt"
)

// ValidationError reports input that is structurally absent, empty, or
// globally inconsistent.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// ParseError reports a row that violates its format's grammar or type
// constraints. Line is 1-based, counted over all lines of the payload.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Line %d: %s", e.Line, e.Msg)
}

// validationErrorf builds a ValidationError from a format string.
func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// parseErrorf builds a ParseError for the given line.
func parseErrorf(line int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsParse reports whether err is (or wraps) a ParseError.
func IsParse(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
