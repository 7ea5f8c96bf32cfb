package update_opening_hours

import (
	"context"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	"github.com/m04kA/SMC-RepairBookingService/pkg/types"
)

// OpeningHoursRepository интерфейс рабочих часов
type OpeningHoursRepository interface {
	Upsert(ctx context.Context, window *domain.OpeningWindow) (*domain.OpeningWindow, error)
	Delete(ctx context.Context, weekday int) error
}

// Guard проверка изменения рабочих часов
type Guard interface {
	ValidateWindowChange(ctx context.Context, weekday int, start, end types.TimeString) error
	ValidateClosure(ctx context.Context, weekday int) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
