package scheduling

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/domain/schedule"
)

const testDate = "2026-09-07"

// A fixed "now" well before testDate so past-time filtering stays out of
// the way.
var testNow = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

func reserveInput(startMinute int) ReserveInput {
	return ReserveInput{
		ClinicID:       1,
		PractitionerID: 7,
		PatientID:      3,
		ServiceID:      2,
		Date:           testDate,
		StartMinute:    startMinute,
		DurationMin:    30,
		BufferMin:      5,
		Now:            testNow,
	}
}

func TestReserveCommitsFreeSlot(t *testing.T) {
	backend := newFakeBackend(schedule.TimeWindow{Start: 540, End: 1020})
	uc := NewReserve(backend, backend, zap.NewNop(), time.Second)

	booking, err := uc.Execute(context.Background(), reserveInput(600))
	require.NoError(t, err)

	assert.Equal(t, uint(7), booking.PractitionerID)
	assert.Equal(t, 600, booking.StartMinute)
	assert.Equal(t, 30, booking.DurationMin)
	assert.Equal(t, string(schedule.StatusConfirmed), booking.Status)
	assert.NotEmpty(t, booking.ConfirmationCode)
	assert.NotZero(t, booking.ID)
}

func TestReserveRejectsTakenSlot(t *testing.T) {
	backend := newFakeBackend(schedule.TimeWindow{Start: 540, End: 1020})
	uc := NewReserve(backend, backend, zap.NewNop(), time.Second)

	_, err := uc.Execute(context.Background(), reserveInput(600))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), reserveInput(600))
	ce, ok := schedule.AsConflict(err)
	require.True(t, ok, "expected a conflict, got %v", err)
	assert.Equal(t, schedule.ReasonTaken, ce.Reason)
}

func TestReserveRejectsBufferViolation(t *testing.T) {
	backend := newFakeBackend(schedule.TimeWindow{Start: 540, End: 1020})
	uc := NewReserve(backend, backend, zap.NewNop(), time.Second)

	_, err := uc.Execute(context.Background(), reserveInput(540))
	require.NoError(t, err)

	// 09:30 sits inside the 5-minute buffer after the 09:00-09:30 booking.
	_, err = uc.Execute(context.Background(), reserveInput(570))
	ce, ok := schedule.AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, schedule.ReasonBuffer, ce.Reason)
}

func TestReserveRejectsOffGridStart(t *testing.T) {
	backend := newFakeBackend(schedule.TimeWindow{Start: 540, End: 1020})
	uc := NewReserve(backend, backend, zap.NewNop(), time.Second)

	_, err := uc.Execute(context.Background(), reserveInput(555))
	_, ok := schedule.AsConflict(err)
	assert.True(t, ok, "off-grid start must conflict, got %v", err)
}

func TestReserveRejectsPastSlotToday(t *testing.T) {
	backend := newFakeBackend(schedule.TimeWindow{Start: 540, End: 1020})
	uc := NewReserve(backend, backend, zap.NewNop(), time.Second)

	in := reserveInput(600)
	in.Now = time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC) // same date, 11:00

	_, err := uc.Execute(context.Background(), in)
	ce, ok := schedule.AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, schedule.ReasonPast, ce.Reason)
}

func TestReserveBusyWhenSectionHeld(t *testing.T) {
	backend := newFakeBackend(schedule.TimeWindow{Start: 540, End: 1020})
	uc := NewReserve(backend, backend, zap.NewNop(), 30*time.Millisecond)

	mu := backend.keyLock(testDate)
	mu.Lock()
	defer mu.Unlock()

	_, err := uc.Execute(context.Background(), reserveInput(600))
	assert.ErrorIs(t, err, schedule.ErrBusy)
}

// N concurrent attempts at the identical slot: exactly one booking commits,
// the rest get deterministic conflicts, never a duplicate.
func TestReserveNoDoubleBookingUnderConcurrency(t *testing.T) {
	backend := newFakeBackend(schedule.TimeWindow{Start: 540, End: 1020})
	backend.insertDelay = 2 * time.Millisecond
	uc := NewReserve(backend, backend, zap.NewNop(), 5*time.Second)

	const attempts = 25

	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = uc.Execute(context.Background(), reserveInput(720))
		}(i)
	}
	wg.Wait()

	wins, conflicts := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		default:
			ce, ok := schedule.AsConflict(err)
			require.True(t, ok, "unexpected error: %v", err)
			assert.Equal(t, schedule.ReasonTaken, ce.Reason)
			conflicts++
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, conflicts)

	booked, err := backend.GetBookings(context.Background(), 7, testDate)
	require.NoError(t, err)
	assert.Len(t, booked, 1)
}

// Concurrent attempts at different slots all succeed; the section
// serializes them but blocks none.
func TestReserveConcurrentDistinctSlots(t *testing.T) {
	backend := newFakeBackend(schedule.TimeWindow{Start: 540, End: 1020})
	uc := NewReserve(backend, backend, zap.NewNop(), 5*time.Second)

	starts := []int{540, 600, 660, 720, 780, 840}

	var wg sync.WaitGroup
	results := make([]error, len(starts))
	for i, start := range starts {
		wg.Add(1)
		go func(i, start int) {
			defer wg.Done()
			_, results[i] = uc.Execute(context.Background(), reserveInput(start))
		}(i, start)
	}
	wg.Wait()

	for i, err := range results {
		assert.NoError(t, err, "slot %d", starts[i])
	}
}

func TestReserveFreedSlotAfterCancellation(t *testing.T) {
	backend := newFakeBackend(schedule.TimeWindow{Start: 540, End: 1020})
	uc := NewReserve(backend, backend, zap.NewNop(), time.Second)

	booking, err := uc.Execute(context.Background(), reserveInput(600))
	require.NoError(t, err)

	now := testNow
	require.NoError(t, schedule.Cancel(booking, now))
	require.NoError(t, backend.CancelBooking(context.Background(), booking))

	rebooked, err := uc.Execute(context.Background(), reserveInput(600))
	require.NoError(t, err)
	assert.NotEqual(t, booking.ID, rebooked.ID)
}

func TestReserveValidatesInput(t *testing.T) {
	backend := newFakeBackend(schedule.TimeWindow{Start: 540, End: 1020})
	uc := NewReserve(backend, backend, zap.NewNop(), time.Second)

	for _, in := range []ReserveInput{
		{Date: testDate, StartMinute: -5, DurationMin: 30, Now: testNow},
		{Date: testDate, StartMinute: 1435, DurationMin: 30, Now: testNow},
		{Date: testDate, StartMinute: 600, DurationMin: 0, Now: testNow},
	} {
		_, err := uc.Execute(context.Background(), in)
		assert.Error(t, err)
	}
}
