package domain

import (
	"time"

	"github.com/m04kA/SMC-RepairBookingService/pkg/types"
)

// OpeningWindow is the shop's working window for one weekday.
// Weekday follows time.Weekday: 0 = Sunday ... 6 = Saturday.
// A weekday without a window is closed.
type OpeningWindow struct {
	Weekday   int
	StartTime types.TimeString
	EndTime   types.TimeString
	UpdatedAt time.Time
}

// Bounds returns the window in minutes of day
func (w *OpeningWindow) Bounds() (start, end int, err error) {
	start, err = w.StartTime.Minutes()
	if err != nil {
		return 0, 0, err
	}
	end, err = w.EndTime.Minutes()
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// WeekdayOf returns the opening-hours weekday of a calendar date
func WeekdayOf(date time.Time) int {
	return int(date.Weekday())
}

// IsValidWeekday checks the 0..6 range
func IsValidWeekday(weekday int) bool {
	return weekday >= 0 && weekday <= 6
}
