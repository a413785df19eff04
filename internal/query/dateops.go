package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/oovz/mcp-json-reader/internal/clock"
	"github.com/oovz/mcp-json-reader/internal/number"
)

// Accepted string layouts, probed in order. Layouts without a zone resolve
// in local time.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// dateTransform applies a date operator element-wise. Values that do not
// parse as instants pass through unchanged under format and report false
// under isToday.
func dateTransform(items []any, op, arg string) []any {
	result := make([]any, len(items))

	for i, item := range items {
		instant, ok := parseInstant(item)

		switch op {
		case opFormat:
			if !ok {
				result[i] = item
				continue
			}
			result[i] = formatInstant(instant, arg)
		case opIsToday:
			result[i] = ok && sameLocalDate(instant, clock.Now())
		default:
			result[i] = item
		}
	}

	return result
}

// parseInstant interprets numbers as epoch milliseconds and strings via the
// layout list.
func parseInstant(value any) (time.Time, bool) {
	if ms, ok := number.ToFloat64(value); ok {
		return time.UnixMilli(int64(ms)), true
	}

	str, ok := value.(string)
	if !ok {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, str, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// formatInstant substitutes each supported token at most once, in the order
// YYYY, MM, DD, HH, mm, ss. Repeated tokens keep their later occurrences.
func formatInstant(t time.Time, tokens string) string {
	local := t.Local()

	result := tokens
	result = strings.Replace(result, "YYYY", fmt.Sprintf("%04d", local.Year()), 1)
	result = strings.Replace(result, "MM", fmt.Sprintf("%02d", int(local.Month())), 1)
	result = strings.Replace(result, "DD", fmt.Sprintf("%02d", local.Day()), 1)
	result = strings.Replace(result, "HH", fmt.Sprintf("%02d", local.Hour()), 1)
	result = strings.Replace(result, "mm", fmt.Sprintf("%02d", local.Minute()), 1)
	result = strings.Replace(result, "ss", fmt.Sprintf("%02d", local.Second()), 1)
	return result
}

func sameLocalDate(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
