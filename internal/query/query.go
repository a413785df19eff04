// Package query evaluates extended JSONPath expressions: a standard
// JSONPath base path followed by at most one family of extension operators
// (aggregation, numeric transforms, date formatting, array reshaping, string
// operations). The base path is resolved by the selector package; everything
// after it is handled here.
package query

import (
	"github.com/oovz/mcp-json-reader/internal/filter"
	"github.com/oovz/mcp-json-reader/internal/selector"
)

// Evaluate runs an extended expression against a decoded JSON document and
// returns a JSON-compatible value. The document is never mutated; every
// engine works on copies. Base-path evaluation failures and invalid regex
// arguments to matches() are the only reported errors; recognized operators
// degrade to defined defaults on edge-case input.
func Evaluate(document any, expression string) (any, error) {
	ext := parseExtension(expression)

	switch ext.kind {
	case extLength:
		return float64(len(toSequence(document))), nil
	case extNone:
		results, err := selector.Select(document, expression)
		if err != nil {
			return nil, err
		}
		return unwrap(results), nil
	}

	input, err := resolveBase(document, ext.basePath)
	if err != nil {
		return nil, err
	}

	switch ext.kind {
	case extAggregate:
		return aggregate(toSequence(input), ext.op, ext.arg), nil
	case extNumeric:
		return numericTransform(toSequence(input), ext.op, ext.arg), nil
	case extDate:
		return dateTransform(toSequence(input), ext.op, ext.arg), nil
	case extArray:
		return applyArrayOps(toSequence(input), ext.remainder), nil
	case extString:
		return stringTransform(input, ext.op, ext.arg)
	}

	return input, nil
}

// Filter selects the array at arrayPath and keeps the elements matching the
// filter condition. The condition language is independent from the extension
// operators; see the filter package.
func Filter(document any, arrayPath string, condition string) ([]any, error) {
	input, err := resolveBase(document, arrayPath)
	if err != nil {
		return nil, err
	}

	return filter.Apply(toSequence(input), condition), nil
}

// resolveBase evaluates the base path, or short-circuits to the whole
// document when the path is empty or just the root marker.
func resolveBase(document any, basePath string) (any, error) {
	if basePath == "" || basePath == "$" {
		return document, nil
	}

	results, err := selector.Select(document, basePath)
	if err != nil {
		return nil, err
	}

	return unwrap(results), nil
}

// unwrap collapses a single-match result list to its value; everything else
// stays a sequence, including the empty result.
func unwrap(results []any) any {
	if len(results) == 1 {
		return results[0]
	}
	return results
}

// toSequence wraps non-sequence values in a one-element sequence for the
// engines that consume sequences.
func toSequence(value any) []any {
	if seq, ok := value.([]any); ok {
		return seq
	}
	return []any{value}
}

// fieldValue reads a named property off an element. The second return is
// false for non-object elements and for missing or null properties, which
// the engines treat as the null class.
func fieldValue(element any, field string) (any, bool) {
	object, ok := element.(map[string]any)
	if !ok {
		return nil, false
	}

	value, ok := object[field]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}
