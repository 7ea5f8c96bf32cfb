package scheduling

import "errors"

var (
	// ErrInvalidWeekday день недели вне диапазона 0..6
	ErrInvalidWeekday = errors.New("scheduling: invalid weekday")

	// ErrInvalidRange начало окна не раньше конца
	ErrInvalidRange = errors.New("scheduling: invalid time range")

	// ErrOutsideOpeningHours интервал не помещается в рабочее окно или день закрыт
	ErrOutsideOpeningHours = errors.New("scheduling: outside opening hours")

	// ErrOverlap интервал пересекается с существующей записью
	ErrOverlap = errors.New("scheduling: overlaps existing appointment")

	// ErrIncompatibleExistingBookings новое окно не вмещает существующие записи
	ErrIncompatibleExistingBookings = errors.New("scheduling: existing appointments fall outside the new window")

	// ErrExistingBookingsPreventClosure день нельзя закрыть, пока на него есть записи
	ErrExistingBookingsPreventClosure = errors.New("scheduling: existing appointments prevent closing the day")
)
