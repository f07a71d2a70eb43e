package scheduling

import (
	"context"
	"sync"
	"time"

	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/domain/schedule"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/models"
)

// fakeBackend implements schedule.Store and schedule.Ledger in memory, with
// the same per-key exclusive section the redis-backed ledger provides.
type fakeBackend struct {
	mu sync.Mutex

	windows    []schedule.TimeWindow // same windows every weekday
	breaks     []schedule.Blocked
	exceptions map[string]*schedule.Exception
	bookings   []*models.Booking

	nextID uint

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex

	insertDelay time.Duration // widens the race window in concurrency tests
}

func newFakeBackend(windows ...schedule.TimeWindow) *fakeBackend {
	return &fakeBackend{
		windows:    windows,
		exceptions: map[string]*schedule.Exception{},
		locks:      map[string]*sync.Mutex{},
	}
}

func (f *fakeBackend) GetWeeklyWindows(_ context.Context, _ uint, _ int) ([]schedule.TimeWindow, error) {
	return f.windows, nil
}

func (f *fakeBackend) GetRecurringBreaks(_ context.Context, _ uint, _ int) ([]schedule.Blocked, error) {
	return f.breaks, nil
}

func (f *fakeBackend) GetDateException(_ context.Context, _ uint, date string) (*schedule.Exception, error) {
	return f.exceptions[date], nil
}

func (f *fakeBackend) GetBookings(_ context.Context, practitionerID uint, date string) ([]schedule.BookingInterval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []schedule.BookingInterval
	for _, b := range f.bookings {
		if b.PractitionerID == practitionerID && b.Date == date && b.Status == string(schedule.StatusConfirmed) {
			out = append(out, schedule.BookingInterval{Start: b.StartMinute, Duration: b.DurationMin})
		}
	}
	return out, nil
}

func (f *fakeBackend) keyLock(key string) *sync.Mutex {
	f.lockMu.Lock()
	defer f.lockMu.Unlock()

	if _, ok := f.locks[key]; !ok {
		f.locks[key] = &sync.Mutex{}
	}
	return f.locks[key]
}

func (f *fakeBackend) WithLock(
	ctx context.Context,
	practitionerID uint,
	date string,
	wait time.Duration,
	fn func(ctx context.Context) error,
) error {

	mu := f.keyLock(date)
	deadline := time.Now().Add(wait)
	for !mu.TryLock() {
		if time.Now().After(deadline) {
			return schedule.ErrBusy
		}
		time.Sleep(time.Millisecond)
	}
	defer mu.Unlock()

	return fn(ctx)
}

func (f *fakeBackend) InsertBooking(_ context.Context, booking *models.Booking) error {
	time.Sleep(f.insertDelay)

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.bookings {
		if b.PractitionerID == booking.PractitionerID &&
			b.Date == booking.Date &&
			b.Status == string(schedule.StatusConfirmed) &&
			b.StartMinute < booking.StartMinute+booking.DurationMin &&
			b.StartMinute+b.DurationMin > booking.StartMinute {
			return schedule.ErrDuplicateSlot
		}
	}

	f.nextID++
	booking.ID = f.nextID
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeBackend) CancelBooking(_ context.Context, booking *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, b := range f.bookings {
		if b.ID == booking.ID {
			f.bookings[i] = booking
			return nil
		}
	}
	return nil
}

var (
	_ schedule.Store  = (*fakeBackend)(nil)
	_ schedule.Ledger = (*fakeBackend)(nil)
)
