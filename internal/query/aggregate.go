package query

import "github.com/oovz/mcp-json-reader/internal/number"

// aggregate folds the named property across all elements. Non-object
// elements and unparseable property values contribute 0, and the empty
// input aggregates to 0 for every operator.
func aggregate(items []any, op, field string) float64 {
	if len(items) == 0 {
		return 0
	}

	values := make([]float64, len(items))
	for i, item := range items {
		value, _ := fieldValue(item, field)
		values[i] = number.Coerce(value)
	}

	switch op {
	case opSum:
		return sum(values)
	case opAvg:
		return sum(values) / float64(len(values))
	case opMin:
		result := values[0]
		for _, v := range values[1:] {
			if v < result {
				result = v
			}
		}
		return result
	case opMax:
		result := values[0]
		for _, v := range values[1:] {
			if v > result {
				result = v
			}
		}
		return result
	}

	return 0
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
