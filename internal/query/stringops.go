package query

import (
	"fmt"
	"regexp"
	"strings"
)

// stringTransform applies a string operator to the resolved base value.
// Non-string input, including multi-match sequences, passes through
// unchanged for every operator. An invalid matches() pattern is the one
// extension error that reaches the caller.
func stringTransform(value any, op, arg string) (any, error) {
	str, ok := value.(string)
	if !ok {
		return value, nil
	}

	switch op {
	case opToLowerCase:
		return strings.ToLower(str), nil
	case opToUpperCase:
		return strings.ToUpper(str), nil
	case opStartsWith:
		return strings.HasPrefix(str, arg), nil
	case opEndsWith:
		return strings.HasSuffix(str, arg), nil
	case opContains:
		return strings.Contains(str, arg), nil
	case opMatches:
		re, err := regexp.Compile(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid matches pattern %q: %w", arg, err)
		}
		return re.MatchString(str), nil
	}

	return value, nil
}
