package query

import (
	"math"

	"github.com/oovz/mcp-json-reader/internal/mathexpr"
	"github.com/oovz/mcp-json-reader/internal/number"
)

// numericTransform coerces every element to a number and applies the
// operator element-wise. Results that are not representable in JSON, such
// as division by zero or the square root of a negative number, become 0.
func numericTransform(items []any, op, arg string) []any {
	values := make([]float64, len(items))
	for i, item := range items {
		values[i] = number.Coerce(item)
	}

	switch op {
	case opMath:
		return applyMath(values, arg)
	case opRound:
		return mapValues(values, math.Round)
	case opFloor:
		return mapValues(values, math.Floor)
	case opCeil:
		return mapValues(values, math.Ceil)
	case opAbs:
		return mapValues(values, math.Abs)
	case opSqrt:
		return mapValues(values, math.Sqrt)
	case opPow2:
		return mapValues(values, func(v float64) float64 { return v * v })
	}

	return mapValues(values, func(v float64) float64 { return v })
}

// applyMath compiles the arithmetic expression once and applies it with
// each element as the implicit leading operand. A malformed expression
// yields 0 for every element rather than an error.
func applyMath(values []float64, expression string) []any {
	transform, err := mathexpr.Compile(expression)
	if err != nil {
		result := make([]any, len(values))
		for i := range result {
			result[i] = float64(0)
		}
		return result
	}

	result := make([]any, len(values))
	for i, v := range values {
		applied, err := transform.Apply(v)
		if err != nil {
			applied = 0
		}
		result[i] = applied
	}
	return result
}

func mapValues(values []float64, fn func(float64) float64) []any {
	result := make([]any, len(values))
	for i, v := range values {
		applied := fn(v)
		if math.IsNaN(applied) || math.IsInf(applied, 0) {
			applied = 0
		}
		result[i] = applied
	}
	return result
}
