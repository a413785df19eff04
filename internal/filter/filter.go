// Package filter parses and applies array filter conditions. A condition
// tests one property of each element, either with a string predicate such
// as @.name.contains('x') or with a comparison such as @.price > 10.
package filter

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/oovz/mcp-json-reader/internal/number"
)

// ErrInvalidCondition is returned for conditions matching neither grammar
// and for predicate or literal arguments that do not compile.
var ErrInvalidCondition = errors.New("invalid filter condition")

// Operator identifies the test a condition applies to the property value.
type Operator string

const (
	OperatorContains   Operator = "contains"
	OperatorStartsWith Operator = "startsWith"
	OperatorEndsWith   Operator = "endsWith"
	OperatorMatches    Operator = "matches"

	OperatorEqual        Operator = "=="
	OperatorNotEqual     Operator = "!="
	OperatorGreater      Operator = ">"
	OperatorGreaterEqual Operator = ">="
	OperatorLess         Operator = "<"
	OperatorLessEqual    Operator = "<="
)

var (
	predicateConditionRe  = regexp.MustCompile(`^@\.(\w+)\.(contains|startsWith|endsWith|matches)\((?:'([^']*)'|"([^"]*)")\)$`)
	comparisonConditionRe = regexp.MustCompile(`^@\.(\w+)\s*(==|!=|>=|<=|>|<)\s*(.+)$`)
)

// Condition is one compiled filter condition.
type Condition struct {
	field    string
	operator Operator
	strArg   string
	numArg   float64
	isString bool
	pattern  *regexp.Regexp
}

// Parse compiles a condition. The predicate grammar is probed first, so
// @.name.contains('x') is never misread as a comparison.
func Parse(input string) (*Condition, error) {
	trimmed := strings.TrimSpace(input)

	if m := predicateConditionRe.FindStringSubmatch(trimmed); m != nil {
		cond := &Condition{
			field:    m[1],
			operator: Operator(m[2]),
			// at most one of the two quote groups can match
			strArg:   m[3] + m[4],
			isString: true,
		}
		if cond.operator == OperatorMatches {
			pattern, err := regexp.Compile(cond.strArg)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidCondition, err)
			}
			cond.pattern = pattern
		}
		return cond, nil
	}

	if m := comparisonConditionRe.FindStringSubmatch(trimmed); m != nil {
		cond := &Condition{field: m[1], operator: Operator(m[2])}

		literal := strings.TrimSpace(m[3])
		switch {
		case len(literal) >= 2 && literal[0] == '\'' && literal[len(literal)-1] == '\'',
			len(literal) >= 2 && literal[0] == '"' && literal[len(literal)-1] == '"':
			cond.strArg = literal[1 : len(literal)-1]
			cond.isString = true
		default:
			parsed, err := strconv.ParseFloat(literal, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: literal %q is neither quoted nor numeric", ErrInvalidCondition, literal)
			}
			cond.numArg = parsed
		}
		return cond, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrInvalidCondition, input)
}

// Apply keeps the elements matching the condition. A condition that does
// not compile filters everything out rather than failing.
func Apply(items []any, condition string) []any {
	compiled, err := Parse(condition)
	if err != nil {
		return []any{}
	}

	result := make([]any, 0, len(items))
	for _, item := range items {
		if compiled.Match(item) {
			result = append(result, item)
		}
	}
	return result
}

// Match reports whether one array element satisfies the condition.
func (c *Condition) Match(element any) bool {
	var value any
	exists := false
	if object, ok := element.(map[string]any); ok {
		value, exists = object[c.field]
	}

	switch c.operator {
	case OperatorContains, OperatorStartsWith, OperatorEndsWith, OperatorMatches:
		return c.predicateMatch(stringify(value))
	case OperatorEqual:
		return c.looseEqual(value, exists)
	case OperatorNotEqual:
		return !c.looseEqual(value, exists)
	default:
		return c.orderingMatch(value, exists)
	}
}

func (c *Condition) predicateMatch(value string) bool {
	switch c.operator {
	case OperatorContains:
		return strings.Contains(value, c.strArg)
	case OperatorStartsWith:
		return strings.HasPrefix(value, c.strArg)
	case OperatorEndsWith:
		return strings.HasSuffix(value, c.strArg)
	case OperatorMatches:
		return c.pattern.MatchString(value)
	}
	return false
}

// looseEqual mirrors loose host-language equality for the literal forms the
// grammar allows: two strings compare directly, mixed types compare
// numerically after coercion, and null or missing properties equal nothing.
func (c *Condition) looseEqual(value any, exists bool) bool {
	if !exists || value == nil {
		return false
	}

	if c.isString {
		if s, ok := value.(string); ok {
			return s == c.strArg
		}
		left, leftOK := number.Relational(value)
		right, rightOK := number.Relational(c.strArg)
		if !leftOK || !rightOK {
			return false
		}
		return left == right
	}

	left, ok := number.Relational(value)
	if !ok {
		return false
	}
	return left == c.numArg
}

// orderingMatch compares a string property against a string literal
// lexicographically; every other combination compares numerically, with
// null coercing to 0. Missing properties never match.
func (c *Condition) orderingMatch(value any, exists bool) bool {
	if !exists {
		return false
	}

	if s, ok := value.(string); ok && c.isString {
		switch c.operator {
		case OperatorGreater:
			return s > c.strArg
		case OperatorGreaterEqual:
			return s >= c.strArg
		case OperatorLess:
			return s < c.strArg
		case OperatorLessEqual:
			return s <= c.strArg
		}
		return false
	}

	left, leftOK := number.Relational(value)
	if !leftOK {
		return false
	}

	right := c.numArg
	if c.isString {
		parsed, ok := number.Relational(c.strArg)
		if !ok {
			return false
		}
		right = parsed
	}

	switch c.operator {
	case OperatorGreater:
		return left > right
	case OperatorGreaterEqual:
		return left >= right
	case OperatorLess:
		return left < right
	case OperatorLessEqual:
		return left <= right
	}
	return false
}

func stringify(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
