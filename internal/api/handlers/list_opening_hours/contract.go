package list_opening_hours

import (
	"context"

	"github.com/m04kA/SMC-RepairBookingService/internal/service/shop/models"
)

type ShopService interface {
	ListOpeningHours(ctx context.Context) (*models.OpeningHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
