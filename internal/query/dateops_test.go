package query

import (
	"reflect"
	"testing"
	"time"

	"github.com/oovz/mcp-json-reader/internal/clock"
)

func TestParseInstant(t *testing.T) {
	t.Parallel()

	epoch := time.Date(2024, 3, 5, 7, 8, 9, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  time.Time
		ok    bool
	}{
		{name: "epoch milliseconds", value: float64(epoch.UnixMilli()), want: epoch, ok: true},
		{name: "rfc3339", value: "2024-03-05T07:08:09Z", want: epoch, ok: true},
		{name: "rfc3339 with offset", value: "2024-03-05T09:08:09+02:00", want: epoch, ok: true},
		{name: "zoneless datetime", value: "2024-03-05T07:08:09", want: time.Date(2024, 3, 5, 7, 8, 9, 0, time.Local), ok: true},
		{name: "space separated", value: "2024-03-05 07:08:09", want: time.Date(2024, 3, 5, 7, 8, 9, 0, time.Local), ok: true},
		{name: "date only", value: "2024-03-05", want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local), ok: true},
		{name: "slash separated", value: "2024/03/05", want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local), ok: true},
		{name: "not a date", value: "soon", ok: false},
		{name: "null", value: nil, ok: false},
		{name: "bool", value: true, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := parseInstant(tt.value)
			if ok != tt.ok {
				t.Fatalf("parseInstant(%v) ok = %v, want %v", tt.value, ok, tt.ok)
			}
			if tt.ok && !got.Equal(tt.want) {
				t.Fatalf("parseInstant(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestDateTransformFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		items  []any
		tokens string
		want   []any
	}{
		{
			name:   "full timestamp",
			items:  []any{"2024-03-05T07:08:09"},
			tokens: "YYYY-MM-DD HH:mm:ss",
			want:   []any{"2024-03-05 07:08:09"},
		},
		{
			name:   "token order is free",
			items:  []any{"2024-03-05"},
			tokens: "DD.MM.YYYY",
			want:   []any{"05.03.2024"},
		},
		{
			name:   "repeated token keeps later occurrences",
			items:  []any{"2024-03-05"},
			tokens: "YYYY YYYY",
			want:   []any{"2024 YYYY"},
		},
		{
			name:   "unparseable values pass through",
			items:  []any{"soon", true},
			tokens: "YYYY",
			want:   []any{"soon", true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := dateTransform(tt.items, opFormat, tt.tokens)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("dateTransform(format, %q) = %v, want %v", tt.tokens, got, tt.want)
			}
		})
	}
}

func TestDateTransformIsToday(t *testing.T) {
	now := time.Date(2024, 3, 5, 15, 30, 0, 0, time.Local)
	restore := clock.SetNowForTest(func() time.Time { return now })
	defer restore()

	items := []any{
		"2024-03-05",
		"2024-03-05T23:59:59",
		float64(now.UnixMilli()),
		"2024-03-06",
		"not a date",
		nil,
	}

	got := dateTransform(items, opIsToday, "")
	want := []any{true, true, true, false, false, false}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("dateTransform(isToday) = %v, want %v", got, want)
	}
}
