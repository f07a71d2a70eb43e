package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/models"
)

func TestResolveOpenWindows(t *testing.T) {
	weekly := []TimeWindow{
		{Start: 540, End: 720},  // 09:00-12:00
		{Start: 840, End: 1020}, // 14:00-17:00
	}

	t.Run("no exception, no breaks", func(t *testing.T) {
		got := ResolveOpenWindows(DaySchedule{Windows: weekly})
		assert.Equal(t, weekly, got)
	})

	t.Run("day without weekly entry has no windows", func(t *testing.T) {
		assert.Empty(t, ResolveOpenWindows(DaySchedule{}))
	})

	t.Run("unavailable exception wins regardless of schedule", func(t *testing.T) {
		got := ResolveOpenWindows(DaySchedule{
			Windows:   weekly,
			Breaks:    []Blocked{{Window: TimeWindow{Start: 600, End: 615}}},
			Exception: &Exception{Kind: models.ExceptionUnavailable},
		})
		assert.Empty(t, got)
	})

	t.Run("special hours replace the weekly schedule", func(t *testing.T) {
		got := ResolveOpenWindows(DaySchedule{
			Windows:   weekly,
			Exception: &Exception{Kind: models.ExceptionSpecialHours, Window: TimeWindow{Start: 780, End: 900}},
		})
		assert.Equal(t, []TimeWindow{{Start: 780, End: 900}}, got)
	})

	t.Run("meeting exception is subtracted from weekly windows", func(t *testing.T) {
		got := ResolveOpenWindows(DaySchedule{
			Windows:   weekly,
			Exception: &Exception{Kind: models.ExceptionMeeting, Window: TimeWindow{Start: 600, End: 660}, Label: "Team meeting"},
		})
		assert.Equal(t, []TimeWindow{
			{Start: 540, End: 600},
			{Start: 660, End: 720},
			{Start: 840, End: 1020},
		}, got)
	})

	t.Run("recurring breaks subtracted independently", func(t *testing.T) {
		got := ResolveOpenWindows(DaySchedule{
			Windows: weekly,
			Breaks: []Blocked{
				{Window: TimeWindow{Start: 600, End: 615}, Label: "Coffee"},
				{Window: TimeWindow{Start: 900, End: 930}},
				{Window: TimeWindow{Start: 750, End: 780}}, // outside every window, no effect
			},
		})
		assert.Equal(t, []TimeWindow{
			{Start: 540, End: 600},
			{Start: 615, End: 720},
			{Start: 840, End: 900},
			{Start: 930, End: 1020},
		}, got)
	})

	t.Run("special hours narrower than breaks can yield nothing", func(t *testing.T) {
		got := ResolveOpenWindows(DaySchedule{
			Windows:   weekly,
			Breaks:    []Blocked{{Window: TimeWindow{Start: 770, End: 910}}},
			Exception: &Exception{Kind: models.ExceptionSpecialHours, Window: TimeWindow{Start: 780, End: 900}},
		})
		assert.Empty(t, got)
	})
}

func TestResolveDayKeepsBlockedIntervals(t *testing.T) {
	weekly := []TimeWindow{{Start: 540, End: 720}}

	grid, blocked := ResolveDay(DaySchedule{
		Windows:   weekly,
		Breaks:    []Blocked{{Window: TimeWindow{Start: 600, End: 615}, Label: "Coffee"}},
		Exception: &Exception{Kind: models.ExceptionMeeting, Window: TimeWindow{Start: 660, End: 690}, Label: "Case review"},
	})

	assert.Equal(t, weekly, grid, "meeting exception must not reshape the grid windows")
	assert.Equal(t, []Blocked{
		{Window: TimeWindow{Start: 600, End: 615}, Label: "Coffee"},
		{Window: TimeWindow{Start: 660, End: 690}, Label: "Case review"},
	}, blocked)
}
