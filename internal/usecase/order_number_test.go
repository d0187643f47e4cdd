package usecase

import (
	"regexp"
	"testing"
	"time"
)

var orderNumberPattern = regexp.MustCompile(`^ORD-\d{4}-\d{6}$`)

func TestFormatOrderNumber(t *testing.T) {
	now := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	cases := map[int]string{
		0:      "ORD-2601-000000",
		42:     "ORD-2601-000042",
		999999: "ORD-2601-999999",
	}
	for suffix, want := range cases {
		if got := FormatOrderNumber(now, suffix); got != want {
			t.Errorf("FormatOrderNumber(%d) = %q, want %q", suffix, got, want)
		}
	}

	if got := FormatOrderNumber(time.Date(2031, time.November, 1, 0, 0, 0, 0, time.UTC), 7); got != "ORD-3111-000007" {
		t.Errorf("unexpected number for november 2031: %q", got)
	}
}

func TestRandomOrderNumbersUsesSource(t *testing.T) {
	var requested int
	gen := &RandomOrderNumbers{intN: func(n int) int {
		requested = n
		return 123
	}}
	got := gen.Generate(time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC))
	if got != "ORD-2610-000123" {
		t.Fatalf("unexpected number %q", got)
	}
	if requested != orderNumberSpace {
		t.Fatalf("expected draw from [0,%d), got n=%d", orderNumberSpace, requested)
	}
}

func TestRandomOrderNumbersFormat(t *testing.T) {
	gen := NewRandomOrderNumbers()
	now := time.Now()
	for i := 0; i < 100; i++ {
		if n := gen.Generate(now); !orderNumberPattern.MatchString(n) {
			t.Fatalf("number %q does not match format", n)
		}
	}
}
