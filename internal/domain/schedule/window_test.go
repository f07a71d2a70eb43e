package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubtract(t *testing.T) {
	morning := TimeWindow{Start: 540, End: 720} // 09:00-12:00

	cases := []struct {
		name string
		sub  TimeWindow
		want []TimeWindow
	}{
		{
			name: "disjoint break leaves window untouched",
			sub:  TimeWindow{Start: 750, End: 780},
			want: []TimeWindow{{Start: 540, End: 720}},
		},
		{
			name: "break in the middle splits the window",
			sub:  TimeWindow{Start: 600, End: 615},
			want: []TimeWindow{{Start: 540, End: 600}, {Start: 615, End: 720}},
		},
		{
			name: "break covering the start trims the front",
			sub:  TimeWindow{Start: 500, End: 600},
			want: []TimeWindow{{Start: 600, End: 720}},
		},
		{
			name: "break covering the end trims the back",
			sub:  TimeWindow{Start: 700, End: 750},
			want: []TimeWindow{{Start: 540, End: 700}},
		},
		{
			name: "break swallowing the window removes it",
			sub:  TimeWindow{Start: 500, End: 800},
			want: []TimeWindow{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SubtractAll([]TimeWindow{morning}, tc.sub))
		})
	}
}

// SubtractAll never returns nil, so callers can range and append without a
// nil check even when nothing survives.
func TestSubtractAllEmptyResultIsNotNil(t *testing.T) {
	got := SubtractAll([]TimeWindow{{Start: 540, End: 720}}, TimeWindow{Start: 0, End: 1440})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// Total open time after subtraction must equal the original duration minus
// the overlapped span, and no result may overlap the subtracted window.
func TestSubtractConservesDuration(t *testing.T) {
	windows := []TimeWindow{{Start: 540, End: 720}, {Start: 840, End: 1020}}

	breaks := []TimeWindow{
		{Start: 0, End: 60},
		{Start: 530, End: 545},
		{Start: 600, End: 630},
		{Start: 700, End: 850},
		{Start: 1000, End: 1100},
		{Start: 540, End: 1020},
	}

	for _, b := range breaks {
		overlapped := 0
		total := 0
		for _, w := range windows {
			total += w.Duration()
			lo := max(w.Start, b.Start)
			hi := min(w.End, b.End)
			if hi > lo {
				overlapped += hi - lo
			}
		}

		result := SubtractAll(windows, b)
		got := 0
		for _, w := range result {
			got += w.Duration()
			assert.False(t, w.Overlaps(b), "result window %+v overlaps subtracted %+v", w, b)
			assert.Positive(t, w.Duration())
		}
		assert.Equal(t, total-overlapped, got, "subtracting %+v", b)
	}
}
