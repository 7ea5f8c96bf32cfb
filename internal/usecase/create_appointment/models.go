package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	"github.com/m04kA/SMC-RepairBookingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	Caller    domain.Caller    // Кто записывает (клиент или сотрудник)
	ServiceID int64            // ID услуги
	VehicleID int64            // ID автомобиля в UserService
	Date      time.Time        // Дата записи (без времени)
	StartTime types.TimeString // Время начала, например "10:00"
	Note      *string          // Комментарий (опционально)
}

// Response модель ответа с созданной записью
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
