package query

import (
	"math"
	"testing"
)

func TestAggregate(t *testing.T) {
	t.Parallel()

	items := pricedItems()

	tests := []struct {
		name string
		op   string
		want float64
	}{
		{name: "sum", op: opSum, want: 53.92},
		{name: "avg", op: opAvg, want: 13.48},
		{name: "min", op: opMin, want: 8.95},
		{name: "max", op: opMax, want: 22.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := aggregate(items, tt.op, "price")
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("aggregate(%s) = %v, want %v", tt.op, got, tt.want)
			}
		})
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	t.Parallel()

	for _, op := range []string{opSum, opAvg, opMin, opMax} {
		if got := aggregate(nil, op, "price"); got != 0 {
			t.Fatalf("aggregate(%s) = %v, want 0", op, got)
		}
	}
}

func TestAggregateCoercion(t *testing.T) {
	t.Parallel()

	items := []any{
		map[string]any{"v": "2.5"},
		map[string]any{"v": float64(1)},
		map[string]any{"v": "not a number"},
		map[string]any{"other": float64(100)},
		"not an object",
	}

	if got := aggregate(items, opSum, "v"); got != 3.5 {
		t.Fatalf("aggregate(sum) = %v, want 3.5", got)
	}
	if got := aggregate(items, opMin, "v"); got != 0 {
		t.Fatalf("aggregate(min) = %v, want 0", got)
	}
	if got := aggregate(items, opMax, "v"); got != 2.5 {
		t.Fatalf("aggregate(max) = %v, want 2.5", got)
	}
}
