package importer

// errors.go maps internal failures onto the import error taxonomy.
//
// Every failure surfaces to the caller as a structured result, never as a
// raw internal fault:
//   - ValidationError / ParseError: produced by the pure parse stage,
//     before any storage mutation.
//   - UnsupportedTypeError: the payload could not be classified, or the
//     caller supplied a tag that is not a known format.
//   - ImportError: anything that goes wrong after parsing succeeded;
//     the transaction is rolled back and the original message preserved.

import (
	"errors"
	"fmt"
	"strings"

	"github.com/askelund/bgastats/internal/parser"
	"github.com/jackc/pgx/v5/pgconn"
)

// Error kind tags carried in Result.ErrorType.
const (
	KindValidation      = "ValidationError"
	KindParse           = "ParseError"
	KindImport          = "ImportError"
	KindUnsupportedType = "UnsupportedTypeError"
)

// unsupportedTypeError marks a payload whose format could not be
// determined or accepted.
type unsupportedTypeError struct {
	tag string
}

func (e *unsupportedTypeError) Error() string {
	return fmt.Sprintf("Unsupported import type: %s", e.tag)
}

// failure converts any error from the pipeline into a failed Result with
// the right kind tag.
func failure(importID string, err error) Result {
	res := Result{ImportID: importID}

	var ute *unsupportedTypeError
	switch {
	case parser.IsValidation(err):
		res.ErrorType = KindValidation
		res.Error = err.Error()
	case parser.IsParse(err):
		res.ErrorType = KindParse
		res.Error = err.Error()
	case errors.As(err, &ute):
		res.ErrorType = KindUnsupportedType
		res.Error = ute.Error()
	default:
		res.ErrorType = KindImport
		res.Error = "Import failed: " + friendlyStorageError(err)
	}

	return res
}

// friendlyStorageError rewrites common Postgres failure modes into text an
// operator can act on, keeping the original message for anything else.
func friendlyStorageError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Sprintf("duplicate key (%s): %s", pgErr.ConstraintName, pgErr.Message)
		case "23503": // foreign_key_violation
			return fmt.Sprintf("referenced record missing (%s): %s", pgErr.ConstraintName, pgErr.Message)
		case "23514": // check_violation
			return fmt.Sprintf("constraint violated (%s): %s", pgErr.ConstraintName, pgErr.Message)
		}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "database unavailable: " + msg
	case strings.Contains(msg, "context deadline exceeded"):
		return "storage operation timed out: " + msg
	}
	return msg
}
