// Package scheduling правила распределения слотов и конфликтов мастерской.
// Пакет без состояния и ввода-вывода: рабочие часы и записи загружает
// вызывающий код и передает сюда интервалами в минутах от начала суток.
package scheduling

import (
	"fmt"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	"github.com/m04kA/SMC-RepairBookingService/pkg/types"
)

// Interval полуоткрытый интервал [Start, End) в минутах от начала суток
type Interval struct {
	Start int
	End   int
}

// Len длина интервала в минутах
func (i Interval) Len() int {
	return i.End - i.Start
}

// Overlaps пересекаются ли интервалы
func (i Interval) Overlaps(other Interval) bool {
	return types.Overlaps(i.Start, i.End, other.Start, other.End)
}

// Contains лежит ли other целиком внутри i
func (i Interval) Contains(other Interval) bool {
	return other.Start >= i.Start && other.End <= i.End
}

// Booking занятый интервал и запись, которая его занимает
type Booking struct {
	ID int64
	Interval
}

// WindowInterval конвертирует рабочее окно в интервал
func WindowInterval(w *domain.OpeningWindow) (Interval, error) {
	start, end, err := w.Bounds()
	if err != nil {
		return Interval{}, fmt.Errorf("opening window weekday=%d: %w", w.Weekday, err)
	}
	return Interval{Start: start, End: end}, nil
}

// Bookings конвертирует записи с сохранением порядка
func Bookings(appointments []*domain.Appointment) ([]Booking, error) {
	result := make([]Booking, 0, len(appointments))
	for _, a := range appointments {
		start, end, err := a.Interval()
		if err != nil {
			return nil, fmt.Errorf("appointment id=%d: %w", a.ID, err)
		}
		result = append(result, Booking{ID: a.ID, Interval: Interval{Start: start, End: end}})
	}
	return result, nil
}
