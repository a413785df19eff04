// Package selector evaluates standard JSONPath expressions against decoded
// JSON documents. It is the base-path collaborator for the query engines;
// extension operators are handled elsewhere.
package selector

import (
	"errors"
	"fmt"

	"github.com/theory/jsonpath"
)

// ErrInvalidPath indicates the expression failed to parse as JSONPath.
var ErrInvalidPath = errors.New("invalid JSONPath expression")

// Select evaluates expr against decoded JSON data and returns every match.
// Expressions follow RFC 9535 semantics (wildcards, recursive descent,
// array indexing and slices, filters).
func Select(data any, expr string) ([]any, error) {
	path, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPath, expr, err)
	}

	return []any(path.Select(data)), nil
}

// Validate checks that expr parses as JSONPath without evaluating it.
func Validate(expr string) error {
	if _, err := jsonpath.Parse(expr); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidPath, expr, err)
	}
	return nil
}
