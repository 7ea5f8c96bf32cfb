package scheduling

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	"github.com/m04kA/SMC-RepairBookingService/pkg/types"
)

func hm(t *testing.T, s string) int {
	t.Helper()
	m, err := types.ToMinutes(s)
	require.NoError(t, err)
	return m
}

func span(t *testing.T, start, end string) Interval {
	return Interval{Start: hm(t, start), End: hm(t, end)}
}

func starts(seq []domain.Slot) []string {
	out := make([]string, len(seq))
	for i, s := range seq {
		out[i] = s.StartTime.String()
	}
	return out
}

func TestFreeIntervals(t *testing.T) {
	window := span(t, "09:00", "13:00")

	t.Run("no bookings gives whole window", func(t *testing.T) {
		assert.Equal(t, []Interval{window}, FreeIntervals(window, nil))
	})

	t.Run("buffer after booking", func(t *testing.T) {
		booked := []Booking{{ID: 1, Interval: span(t, "10:00", "11:00")}}
		assert.Equal(t, []Interval{
			span(t, "09:00", "10:00"),
			span(t, "11:20", "13:00"),
		}, FreeIntervals(window, booked))
	})

	t.Run("booking at opening time", func(t *testing.T) {
		booked := []Booking{{ID: 1, Interval: span(t, "09:00", "09:30")}}
		assert.Equal(t, []Interval{span(t, "09:50", "13:00")}, FreeIntervals(window, booked))
	})

	t.Run("gap shorter than buffer disappears", func(t *testing.T) {
		booked := []Booking{
			{ID: 1, Interval: span(t, "09:00", "10:00")},
			{ID: 2, Interval: span(t, "10:10", "11:00")},
		}
		assert.Equal(t, []Interval{span(t, "11:20", "13:00")}, FreeIntervals(window, booked))
	})

	t.Run("buffer runs past closing", func(t *testing.T) {
		booked := []Booking{{ID: 1, Interval: span(t, "12:00", "12:50")}}
		assert.Equal(t, []Interval{span(t, "09:00", "12:00")}, FreeIntervals(window, booked))
	})
}

func TestServiceSlots_FullDay(t *testing.T) {
	window := span(t, "09:00", "18:00")

	slots := slices.Collect(ServiceSlots(window, nil, 60))

	require.Len(t, slots, 481)
	assert.Equal(t, domain.Slot{StartTime: "09:00", EndTime: "10:00"}, slots[0])
	assert.Equal(t, domain.Slot{StartTime: "17:00", EndTime: "18:00"}, slots[len(slots)-1])
	assert.Equal(t, "09:01", slots[1].StartTime.String())
	assert.NotContains(t, starts(slots), "17:01")
}

func TestServiceSlots_BufferSplitsDay(t *testing.T) {
	window := span(t, "09:00", "13:00")
	booked := []Booking{{ID: 1, Interval: span(t, "10:00", "11:00")}}

	got := starts(slices.Collect(ServiceSlots(window, booked, 30)))

	require.Len(t, got, 31+71)
	assert.Equal(t, "09:00", got[0])
	assert.Equal(t, "09:30", got[30])
	assert.Equal(t, "11:20", got[31])
	assert.Equal(t, "12:30", got[len(got)-1])

	for _, s := range got {
		m := hm(t, s)
		assert.False(t, m >= hm(t, "10:00") && m < hm(t, "11:20"), "unexpected start %s", s)
	}
}

func TestServiceSlots_NothingBeforeBufferEnds(t *testing.T) {
	window := span(t, "09:00", "12:00")
	booked := []Booking{{ID: 1, Interval: span(t, "09:00", "09:30")}}

	slots := slices.Collect(ServiceSlots(window, booked, 15))

	require.NotEmpty(t, slots)
	assert.Equal(t, "09:50", slots[0].StartTime.String())
	for _, s := range slots {
		assert.False(t, s.StartTime.IsBefore("09:50"))
	}
}

func TestServiceSlots_DurationLongerThanGaps(t *testing.T) {
	window := span(t, "09:00", "11:00")
	booked := []Booking{{ID: 1, Interval: span(t, "10:00", "10:30")}}

	assert.Empty(t, slices.Collect(ServiceSlots(window, booked, 90)))
	assert.Empty(t, slices.Collect(ServiceSlots(window, nil, 0)))
}

func TestServiceSlots_Restartable(t *testing.T) {
	seq := ServiceSlots(span(t, "09:00", "10:00"), nil, 45)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
	assert.Len(t, first, 16)

	// ранний выход из range не должен паниковать
	n := 0
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

// Каждый предложенный слот должен проходить проверку размещения
func TestServiceSlots_AlwaysPlaceable(t *testing.T) {
	window := span(t, "08:00", "17:00")
	layouts := [][]Booking{
		nil,
		{{ID: 1, Interval: span(t, "08:00", "08:45")}},
		{{ID: 1, Interval: span(t, "09:00", "10:00")}, {ID: 2, Interval: span(t, "10:30", "11:00")}},
		{{ID: 1, Interval: span(t, "12:00", "13:30")}, {ID: 2, Interval: span(t, "16:00", "17:00")}},
	}

	for _, booked := range layouts {
		for _, duration := range []int{15, 30, 45, 60, 120} {
			for slot := range ServiceSlots(window, booked, duration) {
				start, err := slot.StartTime.Minutes()
				require.NoError(t, err)
				end, err := slot.EndTime.Minutes()
				require.NoError(t, err)
				require.Equal(t, duration, end-start)

				require.NoError(t, CheckPlacement(&window, Interval{Start: start, End: end}, booked, nil))
			}
		}
	}
}
