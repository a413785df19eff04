package query

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/oovz/mcp-json-reader/internal/number"
)

var (
	sortArgRe  = regexp.MustCompile(`\.sort\((-?\w+)\)`)
	distinctRe = regexp.MustCompile(`\.distinct\(\)`)
	reverseRe  = regexp.MustCompile(`\.reverse\(\)`)
	sliceArgRe = regexp.MustCompile(`\[(\d*):(\d*)\]`)
)

// applyArrayOps applies whichever of sort, distinct, reverse and slice
// appear in the expression remainder, always in that order regardless of
// how they are written.
func applyArrayOps(items []any, remainder string) []any {
	result := make([]any, len(items))
	copy(result, items)

	if m := sortArgRe.FindStringSubmatch(remainder); m != nil {
		sortByField(result, m[1])
	}
	if distinctRe.MatchString(remainder) {
		result = distinct(result)
	}
	if reverseRe.MatchString(remainder) {
		reverse(result)
	}
	if m := sliceArgRe.FindStringSubmatch(remainder); m != nil {
		result = slice(result, m[1], m[2])
	}

	return result
}

// sortByField sorts object elements by one property, descending when the
// property name carries a leading minus. The sort is stable and elements
// whose property is missing or null go last in both directions.
func sortByField(items []any, fieldArg string) {
	descending := strings.HasPrefix(fieldArg, "-")
	field := strings.TrimPrefix(fieldArg, "-")

	sort.SliceStable(items, func(i, j int) bool {
		left, leftOK := fieldValue(items[i], field)
		right, rightOK := fieldValue(items[j], field)

		if !leftOK {
			return false
		}
		if !rightOK {
			return true
		}
		if descending {
			return looseGreater(left, right)
		}
		return looseGreater(right, left)
	})
}

// looseGreater is the relational test used for sorting: two strings compare
// lexicographically, everything else compares numerically after coercion.
// Incomparable pairs report false, which leaves their relative order alone.
func looseGreater(a, b any) bool {
	leftStr, leftIsStr := a.(string)
	rightStr, rightIsStr := b.(string)
	if leftIsStr && rightIsStr {
		return leftStr > rightStr
	}

	left, leftOK := number.Relational(a)
	right, rightOK := number.Relational(b)
	if !leftOK || !rightOK {
		return false
	}
	return left > right
}

// distinct keeps the first occurrence of each element, comparing elements
// by their canonical JSON encoding so equal objects and arrays collapse.
func distinct(items []any) []any {
	seen := make(map[string]struct{}, len(items))
	result := make([]any, 0, len(items))

	for _, item := range items {
		encoded, err := json.Marshal(item)
		if err != nil {
			result = append(result, item)
			continue
		}
		if _, ok := seen[string(encoded)]; ok {
			continue
		}
		seen[string(encoded)] = struct{}{}
		result = append(result, item)
	}

	return result
}

func reverse(items []any) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}

// slice cuts the half-open [start:end) window. Empty bounds default to the
// full range and out-of-range bounds clamp instead of failing.
func slice(items []any, startArg, endArg string) []any {
	start := 0
	end := len(items)

	if startArg != "" {
		if parsed, err := strconv.Atoi(startArg); err == nil {
			start = parsed
		}
	}
	if endArg != "" {
		if parsed, err := strconv.Atoi(endArg); err == nil {
			end = parsed
		}
	}

	if end > len(items) {
		end = len(items)
	}
	if start >= end {
		return []any{}
	}

	result := make([]any, end-start)
	copy(result, items[start:end])
	return result
}
