package scheduling

import (
	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	"github.com/m04kA/SMC-RepairBookingService/pkg/types"
)

// DayTimeline раскладка всего дня: свободные участки режутся на слоты по
// TimelineSlotMinutes от начала участка, остаток не короче MinTrailingSlotMinutes
// дает еще один слот. Каждая запись попадает в ответ недоступным слотом.
// booked должны быть отсортированы по началу.
func DayTimeline(window Interval, booked []Booking) []domain.TimelineSlot {
	timeline := make([]domain.TimelineSlot, 0)
	cursor := window.Start

	for _, b := range booked {
		if cursor < b.Start {
			timeline = appendFreeRun(timeline, Interval{Start: cursor, End: min(b.Start, window.End)})
		}

		id := b.ID
		timeline = append(timeline, domain.TimelineSlot{
			StartTime:     types.FromMinutes(b.Start),
			EndTime:       types.FromMinutes(b.End),
			Bookable:      false,
			AppointmentID: &id,
		})

		cursor = max(cursor, b.End)
	}

	if cursor < window.End {
		timeline = appendFreeRun(timeline, Interval{Start: cursor, End: window.End})
	}

	return timeline
}

func appendFreeRun(timeline []domain.TimelineSlot, run Interval) []domain.TimelineSlot {
	s := run.Start
	for ; s+domain.TimelineSlotMinutes <= run.End; s += domain.TimelineSlotMinutes {
		timeline = append(timeline, domain.TimelineSlot{
			StartTime: types.FromMinutes(s),
			EndTime:   types.FromMinutes(s + domain.TimelineSlotMinutes),
			Bookable:  true,
		})
	}

	if run.End-s >= domain.MinTrailingSlotMinutes {
		timeline = append(timeline, domain.TimelineSlot{
			StartTime: types.FromMinutes(s),
			EndTime:   types.FromMinutes(run.End),
			Bookable:  true,
		})
	}

	return timeline
}
