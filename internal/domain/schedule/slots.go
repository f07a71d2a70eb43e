package schedule

import (
	"fmt"

	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/timeutil"
)

// ===============================
// Slot Generator
// ===============================

// Unavailability reasons, checked in this order; the first match wins.
const (
	ReasonWindowTooShort = "Insufficient time in availability window"
	ReasonBuffer         = "Insufficient gap between appointments"
	ReasonBreak          = "Practitioner break"
	ReasonPast           = "Past time"
)

// ReasonBooked names the existing booking that blocks a slot.
func ReasonBooked(startMinute int) string {
	return fmt.Sprintf("Already booked (%s)", timeutil.ToClock12(startMinute))
}

// Slot is a candidate appointment interval, recomputed on every query and
// never persisted. End - Start always equals the requested duration.
type Slot struct {
	Start     int    `json:"start_minute"`
	End       int    `json:"end_minute"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// BookingInterval is the slice of an existing booking the generator needs.
type BookingInterval struct {
	Start    int
	Duration int
}

func (b BookingInterval) End() int {
	return b.Start + b.Duration
}

// GenerateSlots enumerates duration-aligned candidate slots across the
// day's windows and classifies each one. The grid steps by durationMin from
// each window start, so no candidate can straddle a window edge, overlap a
// sibling candidate, or be too short for the requested service. Every
// candidate is emitted, blocked ones included, so callers can show why a
// time is not bookable.
func GenerateSlots(windows []TimeWindow, blocked []Blocked, durationMin, bufferMin int, bookings []BookingInterval) []Slot {
	if durationMin <= 0 {
		return nil
	}

	var slots []Slot
	for _, w := range windows {
		for start := w.Start; start+durationMin <= w.End; start += durationMin {
			slots = append(slots, classify(start, start+durationMin, w, blocked, bufferMin, bookings))
		}
	}
	return slots
}

func classify(start, end int, w TimeWindow, blocked []Blocked, bufferMin int, bookings []BookingInterval) Slot {
	slot := Slot{Start: start, End: end}

	// Guard: the grid construction already keeps candidates inside the window.
	if start < w.Start || end > w.End {
		slot.Reason = ReasonWindowTooShort
		return slot
	}

	for _, b := range bookings {
		if timeutil.Overlaps(start, end, b.Start, b.End()) {
			slot.Reason = ReasonBooked(b.Start)
			return slot
		}
	}

	if bufferMin > 0 {
		for _, b := range bookings {
			// Symmetric padding on both sides of the booking, so a too-close
			// slot is caught on the far side as well as the near side.
			if timeutil.Overlaps(start, end, b.Start-bufferMin, b.End()+bufferMin) {
				slot.Reason = ReasonBuffer
				return slot
			}
		}
	}

	for _, b := range blocked {
		if timeutil.Overlaps(start, end, b.Window.Start, b.Window.End) {
			slot.Reason = b.Label
			if slot.Reason == "" {
				slot.Reason = ReasonBreak
			}
			return slot
		}
	}

	slot.Available = true
	return slot
}

// MarkPast flags every slot not strictly in the future as unavailable.
// Only meaningful when the queried date is the current date; the caller
// decides that, keeping GenerateSlots deterministic.
func MarkPast(slots []Slot, nowMinute int) {
	for i := range slots {
		if slots[i].Available && slots[i].Start <= nowMinute {
			slots[i].Available = false
			slots[i].Reason = ReasonPast
		}
	}
}

// FindSlot returns the generated slot starting at startMinute, if any.
func FindSlot(slots []Slot, startMinute int) (Slot, bool) {
	for _, s := range slots {
		if s.Start == startMinute {
			return s, true
		}
	}
	return Slot{}, false
}
