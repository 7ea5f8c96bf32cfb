package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	createAppointment "github.com/m04kA/SMC-RepairBookingService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-RepairBookingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceID int64   `json:"serviceId"`
	VehicleID int64   `json:"vehicleId"`
	Date      string  `json:"date"`      // "2025-10-15"
	StartTime string  `json:"startTime"` // "10:00"
	Note      *string `json:"note,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	ServiceID int64     `json:"serviceId"`
	VehicleID int64     `json:"vehicleId"`
	OwnerID   int64     `json:"ownerId"`
	Status    string    `json:"status"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(caller domain.Caller) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		Caller:    caller,
		ServiceID: r.ServiceID,
		VehicleID: r.VehicleID,
		Date:      date,
		StartTime: startTime,
		Note:      r.Note,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:        resp.ID,
		Date:      resp.AppointmentDate.Format(domain.DateFormat),
		StartTime: resp.StartTime.String(),
		EndTime:   resp.EndTime.String(),
		ServiceID: resp.ServiceID,
		VehicleID: resp.VehicleID,
		OwnerID:   resp.OwnerID,
		Status:    resp.Status,
		Note:      resp.Note,
		CreatedAt: resp.CreatedAt,
		UpdatedAt: resp.UpdatedAt,
	}
}
