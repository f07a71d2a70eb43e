package scheduling

import (
	"context"
	"time"

	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/domain/schedule"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/httperr"
)

// ======================================================
// INPUT
// ======================================================

type GetSlotsInput struct {
	PractitionerID uint
	Date           string // "YYYY-MM-DD", clinic-local
	DurationMin    int
	BufferMin      int

	// Now is the current clinic-local time; slots already begun are only
	// filtered when Date is Now's calendar date.
	Now time.Time
}

// ======================================================
// USE CASE
// ======================================================

type GetSlots struct {
	store schedule.Store
}

func NewGetSlots(store schedule.Store) *GetSlots {
	return &GetSlots{store: store}
}

func (uc *GetSlots) Execute(
	ctx context.Context,
	in GetSlotsInput,
) ([]schedule.Slot, error) {

	if in.DurationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	date, err := time.ParseInLocation("2006-01-02", in.Date, in.Now.Location())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	weekday := int(date.Weekday())

	windows, err := uc.store.GetWeeklyWindows(ctx, in.PractitionerID, weekday)
	if err != nil {
		return nil, err
	}

	breaks, err := uc.store.GetRecurringBreaks(ctx, in.PractitionerID, weekday)
	if err != nil {
		return nil, err
	}

	exception, err := uc.store.GetDateException(ctx, in.PractitionerID, in.Date)
	if err != nil {
		return nil, err
	}

	bookings, err := uc.store.GetBookings(ctx, in.PractitionerID, in.Date)
	if err != nil {
		return nil, err
	}

	grid, blocked := schedule.ResolveDay(schedule.DaySchedule{
		Windows:   windows,
		Breaks:    breaks,
		Exception: exception,
	})

	slots := schedule.GenerateSlots(grid, blocked, in.DurationMin, in.BufferMin, bookings)

	if in.Date == in.Now.Format("2006-01-02") {
		nowMinute := in.Now.Hour()*60 + in.Now.Minute()
		schedule.MarkPast(slots, nowMinute)
	}

	return slots, nil
}
