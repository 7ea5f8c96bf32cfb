package update_appointment

import (
	"time"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	"github.com/m04kA/SMC-RepairBookingService/pkg/types"
)

// Request частичное изменение записи. nil поля не меняются.
// ServiceID, Date, StartTime, Status меняет только сотрудник; Note владелец или сотрудник.
type Request struct {
	Caller        domain.Caller
	AppointmentID int64

	ServiceID *int64
	Date      *time.Time
	StartTime *types.TimeString
	Status    *domain.AppointmentStatus
	Note      *string
}

// reschedules true, если меняется дата, время или услуга (а значит и интервал)
func (r *Request) reschedules() bool {
	return r.ServiceID != nil || r.Date != nil || r.StartTime != nil
}

func (r *Request) isEmpty() bool {
	return !r.reschedules() && r.Status == nil && r.Note == nil
}

// Response модель ответа с обновленной записью
type Response struct {
	ID              int64
	AppointmentDate time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	ServiceID       int64
	VehicleID       int64
	OwnerID         int64
	Status          string
	Note            *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func fromDomain(a *domain.Appointment) *Response {
	return &Response{
		ID:              a.ID,
		AppointmentDate: a.AppointmentDate,
		StartTime:       a.StartTime,
		EndTime:         a.EndTime,
		ServiceID:       a.ServiceID,
		VehicleID:       a.VehicleID,
		OwnerID:         a.OwnerID,
		Status:          string(a.Status),
		Note:            a.Note,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
