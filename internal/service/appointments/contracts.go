package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
)

// AppointmentRepository интерфейс журнала записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Appointment, error)
	Delete(ctx context.Context, id int64) error
}

// Metrics счетчики операций с записями
type Metrics interface {
	IncAppointmentOperation(operation, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
