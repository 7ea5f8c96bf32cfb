package scheduling

import (
	"iter"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	"github.com/m04kA/SMC-RepairBookingService/pkg/types"
)

// FreeIntervals свободные промежутки окна, в которых может начаться новая запись.
// booked должны быть отсортированы по началу. После каждой записи курсор
// сдвигается на end + BufferMinutes; перед открытием буфер не применяется.
func FreeIntervals(window Interval, booked []Booking) []Interval {
	free := make([]Interval, 0, len(booked)+1)
	cursor := window.Start

	for _, b := range booked {
		if cursor < b.Start {
			free = append(free, Interval{Start: cursor, End: min(b.Start, window.End)})
		}
		cursor = max(cursor, b.End+domain.BufferMinutes)
	}

	if cursor < window.End {
		free = append(free, Interval{Start: cursor, End: window.End})
	}

	return free
}

// ServiceSlots перебирает по возрастанию все минуты начала s в свободных
// интервалах, для которых s+duration <= конец интервала.
// Последовательность ленивая, ее можно обходить повторно.
func ServiceSlots(window Interval, booked []Booking, duration int) iter.Seq[domain.Slot] {
	free := FreeIntervals(window, booked)

	return func(yield func(domain.Slot) bool) {
		if duration <= 0 {
			return
		}
		for _, f := range free {
			for s := f.Start; s+duration <= f.End; s++ {
				if !yield(domain.Slot{
					StartTime: types.FromMinutes(s),
					EndTime:   types.FromMinutes(s + duration),
				}) {
					return
				}
			}
		}
	}
}
