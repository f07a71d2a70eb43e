package schedule

import (
	"context"
	"time"

	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/models"
)

// Store reads the schedule state the core computes from. Read-only:
// weekly windows, breaks and exceptions are practitioner configuration
// mutated through the settings handlers, never by the core.
type Store interface {
	// -------- Weekly schedule --------
	GetWeeklyWindows(
		ctx context.Context,
		practitionerID uint,
		weekday int,
	) ([]TimeWindow, error)

	GetRecurringBreaks(
		ctx context.Context,
		practitionerID uint,
		weekday int,
	) ([]Blocked, error)

	// -------- Date overrides --------
	GetDateException(
		ctx context.Context,
		practitionerID uint,
		date string,
	) (*Exception, error)

	// -------- Bookings (read side) --------
	GetBookings(
		ctx context.Context,
		practitionerID uint,
		date string,
	) ([]BookingInterval, error)
}

// Ledger owns the booking collection. The reservation coordinator is its
// only writer; WithLock serializes check-and-commit per practitioner-day.
type Ledger interface {
	// WithLock runs fn while holding the (practitionerID, date) section.
	// Acquisition waits at most wait, then fails with ErrBusy. Once fn is
	// running it is not interrupted by the caller's cancellation.
	WithLock(
		ctx context.Context,
		practitionerID uint,
		date string,
		wait time.Duration,
		fn func(ctx context.Context) error,
	) error

	// InsertBooking fails with ErrDuplicateSlot if an overlapping confirmed
	// booking already exists for the same practitioner-day.
	InsertBooking(
		ctx context.Context,
		booking *models.Booking,
	) error

	CancelBooking(
		ctx context.Context,
		booking *models.Booking,
	) error
}
