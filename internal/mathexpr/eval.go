package mathexpr

import (
	"math"
	"strings"
)

// Transform is a compiled arithmetic expression with a single free value
// slot at the front, e.g. "* 1.1" or "- 2 + 3". Applying it evaluates the
// expression as if the value were written as its leading operand.
type Transform struct {
	root node
}

// Compile parses a partial arithmetic expression that expects a value on
// its left, such as "* 1.1". The language is limited to numeric literals,
// the four basic operators, and parentheses; anything else fails here.
func Compile(input string) (*Transform, error) {
	if strings.TrimSpace(input) == "" {
		return nil, expressionError("expression is empty")
	}

	lexed, err := lex(input)
	if err != nil {
		return nil, err
	}

	tokens := make([]token, 0, len(lexed)+1)
	tokens = append(tokens, token{typ: tokenValue})
	tokens = append(tokens, lexed...)

	root, err := parse(tokens)
	if err != nil {
		return nil, err
	}

	return &Transform{root: root}, nil
}

// Apply evaluates the expression with the given value bound to the leading
// operand. Division by zero and non-finite results are reported as errors
// so callers can substitute their defined fallback.
func (t *Transform) Apply(value float64) (float64, error) {
	result, err := evaluate(t.root, value)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, expressionError("result is not a finite number")
	}

	return result, nil
}

func evaluate(root node, value float64) (float64, error) {
	switch current := root.(type) {
	case valueNode:
		return value, nil
	case literalNode:
		return current.value, nil
	case unaryNode:
		right, err := evaluate(current.right, value)
		if err != nil {
			return 0, err
		}
		return -right, nil
	case binaryNode:
		left, err := evaluate(current.left, value)
		if err != nil {
			return 0, err
		}
		right, err := evaluate(current.right, value)
		if err != nil {
			return 0, err
		}

		switch current.op {
		case tokenPlus:
			return left + right, nil
		case tokenMinus:
			return left - right, nil
		case tokenStar:
			return left * right, nil
		case tokenSlash:
			if right == 0 {
				return 0, expressionError("division by zero")
			}
			return left / right, nil
		default:
			return 0, expressionError("unsupported binary operator")
		}
	default:
		return 0, expressionError("unsupported expression node")
	}
}

// Validate reports whether the input compiles without applying it.
func Validate(input string) error {
	_, err := Compile(input)
	return err
}
