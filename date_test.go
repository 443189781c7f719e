package peatrack

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  Date
		err   bool
	}{
		{"iso date", "2025-07-16", NewDate(2025, time.July, 16), false},
		{"single digit month and day", "2025-7-1", NewDate(2025, time.July, 1), false},
		{"timestamp keeps the day only", "2025-07-16T17:30:00+02:00", NewDate(2025, time.July, 16), false},
		{"garbage", "yesterday", Date{}, true},
		{"empty", "", Date{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.input)
			if (err != nil) != tc.err {
				t.Fatalf("ParseDate(%q) error = %v, want error=%v", tc.input, err, tc.err)
			}
			if got != tc.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestDate_Sub(t *testing.T) {
	testCases := []struct {
		a, b string
		want int
	}{
		{"2025-07-16", "2025-07-16", 0},
		{"2025-07-17", "2025-07-16", 1},
		{"2026-01-01", "2025-01-01", 365},
		{"2025-01-01", "2026-01-01", -365},
		{"2025-03-01", "2025-02-28", 1},
	}
	for _, tc := range testCases {
		a, b := MustParseDate(tc.a), MustParseDate(tc.b)
		if got := a.Sub(b); got != tc.want {
			t.Errorf("%s.Sub(%s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestDate_Add(t *testing.T) {
	d := MustParseDate("2025-07-31")
	if got := d.Add(1); got != MustParseDate("2025-08-01") {
		t.Errorf("Add(1) = %v, want 2025-08-01", got)
	}
	if got := d.Add(-31); got != MustParseDate("2025-06-30") {
		t.Errorf("Add(-31) = %v, want 2025-06-30", got)
	}
}

func TestDateOf_DropsTimezone(t *testing.T) {
	paris := time.FixedZone("CEST", 2*3600)
	// Late evening in Paris is still the same calendar day there.
	got := DateOf(time.Date(2025, time.July, 16, 23, 30, 0, 0, paris))
	if got != NewDate(2025, time.July, 16) {
		t.Errorf("DateOf() = %v, want 2025-07-16", got)
	}
}
