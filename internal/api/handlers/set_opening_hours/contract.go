package set_opening_hours

import (
	"context"

	updateOpeningHours "github.com/m04kA/SMC-RepairBookingService/internal/usecase/update_opening_hours"
)

type UpdateOpeningHoursUseCase interface {
	Execute(ctx context.Context, req *updateOpeningHours.Request) (*updateOpeningHours.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
