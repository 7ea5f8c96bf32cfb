package models

import (
	"time"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
)

// Request модели

// ListRequest запрос списка записей.
// Сотрудник получает записи на дату (обязательна), клиент свои записи (дата фильтрует опционально).
type ListRequest struct {
	Caller domain.Caller
	Date   *time.Time
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`      // "2025-10-15"
	StartTime string  `json:"startTime"` // "10:00"
	EndTime   string  `json:"endTime"`   // "11:30"
	ServiceID int64   `json:"serviceId"`
	VehicleID int64   `json:"vehicleId"`
	OwnerID   int64   `json:"ownerId"`
	Status    string  `json:"status"`
	Note      *string `json:"note,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:        a.ID,
		Date:      a.AppointmentDate.Format(domain.DateFormat),
		StartTime: a.StartTime.String(),
		EndTime:   a.EndTime.String(),
		ServiceID: a.ServiceID,
		VehicleID: a.VehicleID,
		OwnerID:   a.OwnerID,
		Status:    string(a.Status),
		Note:      a.Note,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if item := FromDomainAppointment(a); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}

	return resp
}
