package update_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	"github.com/m04kA/SMC-RepairBookingService/pkg/types"
)

// AppointmentRepository интерфейс журнала записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, id int64, upd domain.AppointmentUpdate) (*domain.Appointment, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetDuration(ctx context.Context, serviceID int64) (int, error)
}

// Guard проверка размещения записи
type Guard interface {
	ValidateCreate(ctx context.Context, date time.Time, start, end types.TimeString, excludeID *int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// DateLocker блокировка расписания на даты (старая и новая при переносе)
type DateLocker interface {
	WithDateLocks(ctx context.Context, dates []time.Time, fn func(ctx context.Context) error) error
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
