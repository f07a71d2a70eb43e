package timeutil

import (
	"errors"
	"testing"
)

func TestToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"9:00", 540},
		{"14:30", 870},
		{"23:59", 1439},
		{"9:00 AM", 540},
		{"9:00am", 540},
		{"12:00 AM", 0},
		{"12:00 PM", 720},
		{"2:30 pm", 870},
		{"11:59 PM", 1439},
		{" 10:15 ", 615},
	}

	for _, tc := range cases {
		got, err := ToMinutes(tc.in)
		if err != nil {
			t.Fatalf("ToMinutes(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ToMinutes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestToMinutesInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "25:00", "12:60", "13:00 PM", "0:00 AM", "9", "9:0:0"} {
		if _, err := ToMinutes(in); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("ToMinutes(%q): expected ErrInvalidTimeFormat, got %v", in, err)
		}
	}
}

func TestClockFormatting(t *testing.T) {
	cases := []struct {
		minutes int
		clock24 string
		clock12 string
	}{
		{0, "00:00", "12:00 AM"},
		{540, "09:00", "9:00 AM"},
		{720, "12:00", "12:00 PM"},
		{750, "12:30", "12:30 PM"},
		{870, "14:30", "2:30 PM"},
		{1439, "23:59", "11:59 PM"},
	}

	for _, tc := range cases {
		if got := ToClock24(tc.minutes); got != tc.clock24 {
			t.Errorf("ToClock24(%d) = %q, want %q", tc.minutes, got, tc.clock24)
		}
		if got := ToClock12(tc.minutes); got != tc.clock12 {
			t.Errorf("ToClock12(%d) = %q, want %q", tc.minutes, got, tc.clock12)
		}
	}
}

func TestToMinutesRoundTrip(t *testing.T) {
	for m := 0; m < MinutesPerDay; m += 7 {
		got, err := ToMinutes(ToClock24(m))
		if err != nil || got != m {
			t.Fatalf("round trip via 24h failed for %d: got %d, err %v", m, got, err)
		}
		got, err = ToMinutes(ToClock12(m))
		if err != nil || got != m {
			t.Fatalf("round trip via 12h failed for %d: got %d, err %v", m, got, err)
		}
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{540, 570, 570, 600, false}, // touching edges do not overlap
		{540, 570, 560, 600, true},
		{540, 600, 550, 560, true}, // containment
		{540, 570, 500, 540, false},
		{540, 570, 540, 570, true},
	}

	for _, tc := range cases {
		if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
			t.Errorf("Overlaps(%d,%d,%d,%d) = %v, want %v",
				tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
		}
	}
}
