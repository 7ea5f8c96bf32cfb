package get_day_timeline

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
)

// AppointmentRepository интерфейс журнала записей
type AppointmentRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
}

// OpeningHoursRepository интерфейс рабочих часов
type OpeningHoursRepository interface {
	GetByWeekday(ctx context.Context, weekday int) (*domain.OpeningWindow, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
