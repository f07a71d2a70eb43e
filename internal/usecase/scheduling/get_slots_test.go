package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/domain/schedule"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/models"
)

func TestGetSlotsPipeline(t *testing.T) {
	backend := newFakeBackend(schedule.TimeWindow{Start: 540, End: 720})
	backend.breaks = []schedule.Blocked{{Window: schedule.TimeWindow{Start: 600, End: 615}, Label: "Morning tea"}}
	uc := NewGetSlots(backend)

	slots, err := uc.Execute(context.Background(), GetSlotsInput{
		PractitionerID: 7,
		Date:           testDate,
		DurationMin:    30,
		BufferMin:      5,
		Now:            testNow,
	})
	require.NoError(t, err)
	require.Len(t, slots, 6) // 09:00 through 11:30 on the 30-minute grid

	assert.True(t, slots[0].Available)
	assert.True(t, slots[1].Available)
	assert.False(t, slots[2].Available, "10:00 overlaps the tea break")
	assert.Equal(t, "Morning tea", slots[2].Reason)
}

func TestGetSlotsUnavailableException(t *testing.T) {
	backend := newFakeBackend(schedule.TimeWindow{Start: 540, End: 720})
	backend.exceptions[testDate] = &schedule.Exception{Kind: models.ExceptionUnavailable, Label: "Conference"}
	uc := NewGetSlots(backend)

	slots, err := uc.Execute(context.Background(), GetSlotsInput{
		PractitionerID: 7,
		Date:           testDate,
		DurationMin:    30,
		Now:            testNow,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetSlotsMarksPastOnlyToday(t *testing.T) {
	backend := newFakeBackend(schedule.TimeWindow{Start: 540, End: 720})
	uc := NewGetSlots(backend)

	// Querying testDate at 10:10 that same day: 09:00-10:00 starts are gone.
	now := time.Date(2026, 9, 7, 10, 10, 0, 0, time.UTC)
	slots, err := uc.Execute(context.Background(), GetSlotsInput{
		PractitionerID: 7,
		Date:           testDate,
		DurationMin:    30,
		Now:            now,
	})
	require.NoError(t, err)

	for _, s := range slots {
		if s.Start <= 610 {
			assert.False(t, s.Available, "slot %d should be past", s.Start)
			assert.Equal(t, schedule.ReasonPast, s.Reason)
		} else {
			assert.True(t, s.Available, "slot %d should be open", s.Start)
		}
	}

	// Same query for a future date keeps everything.
	slots, err = uc.Execute(context.Background(), GetSlotsInput{
		PractitionerID: 7,
		Date:           "2026-09-08",
		DurationMin:    30,
		Now:            now,
	})
	require.NoError(t, err)
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestGetSlotsRejectsBadInput(t *testing.T) {
	backend := newFakeBackend(schedule.TimeWindow{Start: 540, End: 720})
	uc := NewGetSlots(backend)

	_, err := uc.Execute(context.Background(), GetSlotsInput{Date: "not-a-date", DurationMin: 30, Now: testNow})
	assert.Error(t, err)

	_, err = uc.Execute(context.Background(), GetSlotsInput{Date: testDate, DurationMin: 0, Now: testNow})
	assert.Error(t, err)
}
