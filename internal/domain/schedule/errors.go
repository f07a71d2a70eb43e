package schedule

import "errors"

// ===============================
// Error taxonomy
// ===============================

// Every error here is an expected scheduling outcome, returned as a value
// and mapped to a response by the handler layer. Nothing is fatal.

var (
	// ErrBusy: the per-practitioner-day section could not be acquired in time.
	// Safe to retry with backoff.
	ErrBusy = errors.New("schedule: reservation section busy")

	// ErrDuplicateSlot: ledger-level rejection of an overlapping insert.
	// Defense in depth beneath the section lock.
	ErrDuplicateSlot = errors.New("schedule: duplicate slot")
)

// ReasonTaken is the conflict reason when a slot was booked between the
// client's query and its reservation attempt.
const ReasonTaken = "Slot no longer available"

// ConflictError reports why a requested slot cannot be reserved. The reason
// is one of the generator's slot reasons or ReasonTaken.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return "schedule: slot conflict: " + e.Reason
}

// AsConflict unwraps err into a *ConflictError if it is one.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
