package list_services

import (
	"context"

	"github.com/m04kA/SMC-RepairBookingService/internal/service/shop/models"
)

type ShopService interface {
	ListServices(ctx context.Context) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
