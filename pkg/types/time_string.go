package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay количество минут в сутках, верхняя (исключающая) граница TimeString
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidFormat возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidFormat = errors.New("invalid time string format")

	// ErrOutOfDay возвращается, когда результат арифметики выходит за пределы суток
	ErrOutOfDay = errors.New("time string: result is out of day bounds")
)

// TimeString время суток в формате "HH:MM" (часы и минуты всегда двузначные)
type TimeString string

// ToMinutes переводит строку "HH:MM" в минуты от начала суток: hour*60+minute
func ToMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	hour, err := parseNonNegative(parts[0])
	if err != nil || hour > 23 {
		return 0, fmt.Errorf("%w: invalid hour in %q", ErrInvalidFormat, s)
	}

	minute, err := parseNonNegative(parts[1])
	if err != nil || minute > 59 {
		return 0, fmt.Errorf("%w: invalid minute in %q", ErrInvalidFormat, s)
	}

	return hour*60 + minute, nil
}

// FromMinutes обратное преобразование для ToMinutes.
// Вызывающий гарантирует, что minutes лежит в [0, MinutesPerDay).
func FromMinutes(minutes int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}

// Overlaps проверяет пересечение полуинтервалов [aStart, aEnd) и [bStart, bEnd).
// Интервалы, которые только касаются границами, не пересекаются.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// NewTimeStringFromString создает TimeString из строки, нормализуя её к виду "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, err := ToMinutes(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return FromMinutes(minutes), nil
}

// NewTimeString создает TimeString из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return FromMinutes(t.Hour()*60 + t.Minute())
}

// Minutes возвращает количество минут от начала суток
func (t TimeString) Minutes() (int, error) {
	return ToMinutes(string(t))
}

// AddMinutes возвращает время, сдвинутое на n минут.
// Переход через полночь считается ошибкой.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return "", err
	}

	result := minutes + n
	if result < 0 || result >= MinutesPerDay {
		return "", fmt.Errorf("%w: %s %+d min", ErrOutOfDay, t, n)
	}

	return FromMinutes(result), nil
}

// IsBefore сравнивает два времени суток
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter сравнивает два времени суток
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}

func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

func (t TimeString) String() string {
	return string(t)
}

// Scan реализует sql.Scanner для колонок типа TIME.
// lib/pq отдает TIME как time.Time с датой 0000-01-01, драйверы в текстовом режиме как "HH:MM:SS".
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanText(string(v))
	case string:
		return t.scanText(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidFormat, src)
	}
}

func (t *TimeString) scanText(s string) error {
	// "HH:MM:SS" и "HH:MM:SS.ffffff" обрезаем до минут
	if len(s) > 5 && s[5] == ':' {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

func parseNonNegative(s string) (int, error) {
	if s == "" {
		return 0, ErrInvalidFormat
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidFormat
		}
	}
	return strconv.Atoi(s)
}
