package update_opening_hours

import (
	"fmt"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	"github.com/m04kA/SMC-RepairBookingService/internal/scheduling"
)

// validateRequest проверка формата; диапазон и совместимость с записями проверяет Guard
func validateRequest(req *Request) error {
	if !req.Caller.IsStaff() {
		return ErrAccessDenied
	}

	if !domain.IsValidWeekday(req.Weekday) {
		return fmt.Errorf("%w: %d", scheduling.ErrInvalidWeekday, req.Weekday)
	}

	if req.closes() {
		return nil
	}

	if req.Start == nil || req.End == nil {
		return fmt.Errorf("%w: start and end must be set together", ErrInvalidInput)
	}

	if err := req.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidInput, err)
	}

	if err := req.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidInput, err)
	}

	return nil
}
