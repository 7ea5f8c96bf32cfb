package shop

import (
	"context"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
)

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetAll(ctx context.Context) ([]*domain.Service, error)
}

// OpeningHoursRepository интерфейс рабочих часов
type OpeningHoursRepository interface {
	GetAll(ctx context.Context) ([]*domain.OpeningWindow, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
