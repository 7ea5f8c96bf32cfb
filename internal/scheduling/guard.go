package scheduling

import (
	"fmt"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
)

// CheckPlacement проверяет интервал записи по рабочему окну дня (nil = выходной)
// и остальным записям на дату. Запись с excludeID не учитывается,
// поэтому при переносе запись не конфликтует сама с собой.
func CheckPlacement(window *Interval, proposed Interval, booked []Booking, excludeID *int64) error {
	if window == nil {
		return fmt.Errorf("%w: shop is closed on this day", ErrOutsideOpeningHours)
	}

	if !window.Contains(proposed) {
		return fmt.Errorf("%w: [%d,%d) not within [%d,%d)",
			ErrOutsideOpeningHours, proposed.Start, proposed.End, window.Start, window.End)
	}

	for _, b := range booked {
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if proposed.Overlaps(b.Interval) {
			return fmt.Errorf("%w: conflicts with appointment id=%d", ErrOverlap, b.ID)
		}
	}

	return nil
}

// ValidateWindow проверяет день недели и start < end
func ValidateWindow(weekday int, window Interval) error {
	if !domain.IsValidWeekday(weekday) {
		return fmt.Errorf("%w: %d", ErrInvalidWeekday, weekday)
	}
	if window.Start >= window.End {
		return fmt.Errorf("%w: start must be before end", ErrInvalidRange)
	}
	return nil
}

// CheckWindowChange проверяет, что все записи на этот день недели
// помещаются в новое окно
func CheckWindowChange(window Interval, existing []Booking) error {
	for _, b := range existing {
		if !window.Contains(b.Interval) {
			return fmt.Errorf("%w: appointment id=%d", ErrIncompatibleExistingBookings, b.ID)
		}
	}
	return nil
}

// CheckClosure запрещает закрывать день недели, если на него есть записи
func CheckClosure(existingCount int) error {
	if existingCount > 0 {
		return fmt.Errorf("%w: %d appointment(s) scheduled", ErrExistingBookingsPreventClosure, existingCount)
	}
	return nil
}
