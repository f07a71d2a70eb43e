package schedule

import "github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/models"

// ===============================
// Availability Resolver
// ===============================

// Exception is a resolved one-off override for a single calendar date.
type Exception struct {
	Kind   string
	Window TimeWindow // meaningless when Kind is ExceptionUnavailable
	Label  string
}

// Blocked is an interval carved out of the working day, with the label
// shown to callers when it blocks a slot.
type Blocked struct {
	Window TimeWindow
	Label  string
}

// DaySchedule carries everything needed to resolve one practitioner-date:
// the weekday's recurring windows and breaks, plus the date's exception, if any.
type DaySchedule struct {
	Windows   []TimeWindow // weekly working windows, sorted, disjoint
	Breaks    []Blocked    // recurring breaks active on this weekday
	Exception *Exception
}

// ResolveDay applies the exception precedence and returns the windows the
// slot grid runs over together with every interval blocked out of them.
//
// Precedence: an "unavailable" exception wins outright; "special_hours"
// replaces the weekly windows wholesale; "meeting"/"break" exceptions join
// the recurring breaks as one more blocked interval.
func ResolveDay(day DaySchedule) ([]TimeWindow, []Blocked) {
	grid := day.Windows
	blocked := day.Breaks

	if ex := day.Exception; ex != nil {
		switch ex.Kind {
		case models.ExceptionUnavailable:
			return nil, nil
		case models.ExceptionSpecialHours:
			if ex.Window.Duration() <= 0 {
				return nil, nil
			}
			grid = []TimeWindow{ex.Window}
		default: // meeting, break
			blocked = append(blocked, Blocked{Window: ex.Window, Label: ex.Label})
		}
	}

	return grid, blocked
}

// ResolveOpenWindows subtracts every blocked interval from the day's
// windows, yielding the open wall-clock windows for the date. Subtraction
// of a mid-window break splits the window in two; empty remainders are
// dropped and the result stays sorted and non-overlapping.
func ResolveOpenWindows(day DaySchedule) []TimeWindow {
	grid, blocked := ResolveDay(day)
	for _, b := range blocked {
		grid = SubtractAll(grid, b.Window)
	}
	return grid
}
