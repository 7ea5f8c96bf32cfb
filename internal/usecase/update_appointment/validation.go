package update_appointment

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.isEmpty() {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date != nil && req.Date.IsZero() {
		return fmt.Errorf("%w: date is empty", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
		}
	}

	if req.Status != nil && !req.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
	}

	if req.Note != nil && utf8.RuneCountInString(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note is longer than %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	return nil
}

// checkAccess сотрудник меняет все, владелец только комментарий
func checkAccess(caller domain.Caller, current *domain.Appointment, req *Request) error {
	if caller.IsStaff() {
		return nil
	}

	if !current.IsOwnedBy(caller.UserID) {
		return ErrAccessDenied
	}

	if req.reschedules() || req.Status != nil {
		return fmt.Errorf("%w: only staff can reschedule or change status", ErrAccessDenied)
	}

	return nil
}
