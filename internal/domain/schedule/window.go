package schedule

import "github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/timeutil"

// TimeWindow is a half-open wall-clock interval [Start, End) in minutes
// since midnight. Invariant: Start < End.
type TimeWindow struct {
	Start int `json:"start_minute"`
	End   int `json:"end_minute"`
}

func (w TimeWindow) Duration() int {
	return w.End - w.Start
}

func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return timeutil.Overlaps(w.Start, w.End, other.Start, other.End)
}

// Subtract removes b from w, yielding zero, one or two sub-windows.
// A break in the middle of a working window splits it in two.
func Subtract(w, b TimeWindow) []TimeWindow {
	if !w.Overlaps(b) {
		return []TimeWindow{w}
	}

	var out []TimeWindow
	if b.Start > w.Start {
		out = append(out, TimeWindow{Start: w.Start, End: b.Start})
	}
	if b.End < w.End {
		out = append(out, TimeWindow{Start: b.End, End: w.End})
	}
	return out
}

// SubtractAll removes b from every window in ws, dropping empty results.
// Input windows are assumed sorted and disjoint; output keeps both properties.
func SubtractAll(ws []TimeWindow, b TimeWindow) []TimeWindow {
	out := make([]TimeWindow, 0, len(ws))
	for _, w := range ws {
		for _, sub := range Subtract(w, b) {
			if sub.Duration() > 0 {
				out = append(out, sub)
			}
		}
	}
	return out
}
