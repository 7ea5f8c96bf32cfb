package guard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
)

// AppointmentRepository чтение журнала записей
type AppointmentRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
	ListByWeekday(ctx context.Context, weekday int) ([]*domain.Appointment, error)
	CountByWeekday(ctx context.Context, weekday int) (int, error)
}

// OpeningHoursRepository чтение рабочих часов
type OpeningHoursRepository interface {
	GetByWeekday(ctx context.Context, weekday int) (*domain.OpeningWindow, error)
}

// Metrics счетчик отказов (реализация допускает nil)
type Metrics interface {
	IncGuardRejection(reason string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
