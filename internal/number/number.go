package number

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ToFloat64 converts supported numeric values to float64.
func ToFloat64(value any) (float64, bool) {
	switch current := value.(type) {
	case int:
		return float64(current), true
	case int8:
		return float64(current), true
	case int16:
		return float64(current), true
	case int32:
		return float64(current), true
	case int64:
		return float64(current), true
	case uint:
		return float64(current), true
	case uint8:
		return float64(current), true
	case uint16:
		return float64(current), true
	case uint32:
		return float64(current), true
	case uint64:
		return float64(current), true
	case float32:
		return float64(current), true
	case float64:
		return current, true
	case json.Number:
		parsed, err := current.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// Coerce converts a value to float64 the way the query engines expect:
// numeric values pass through, anything else is parsed from its string
// form, and unparseable values become 0.
func Coerce(value any) float64 {
	if parsed, ok := ToFloat64(value); ok {
		return parsed
	}

	str, ok := value.(string)
	if !ok {
		if value == nil {
			return 0
		}
		str = fmt.Sprintf("%v", value)
	}

	parsed, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0
	}
	return parsed
}

// Relational converts a value for ordering comparisons: numbers pass
// through, numeric strings parse with empty strings counting as 0, booleans
// map to 0 and 1, and null maps to 0. Objects and arrays are not comparable.
func Relational(value any) (float64, bool) {
	if parsed, ok := ToFloat64(value); ok {
		return parsed, true
	}

	switch current := value.(type) {
	case nil:
		return 0, true
	case bool:
		if current {
			return 1, true
		}
		return 0, true
	case string:
		trimmed := strings.TrimSpace(current)
		if trimmed == "" {
			return 0, true
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
