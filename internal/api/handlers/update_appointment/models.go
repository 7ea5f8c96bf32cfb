package update_appointment

import (
	"time"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	updateAppointment "github.com/m04kA/SMC-RepairBookingService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-RepairBookingService/pkg/types"
)

// UpdateAppointmentRequest HTTP request model. Отсутствующие поля не меняются.
type UpdateAppointmentRequest struct {
	ServiceID *int64  `json:"serviceId,omitempty"`
	Date      *string `json:"date,omitempty"`      // "2025-10-15"
	StartTime *string `json:"startTime,omitempty"` // "10:00"
	Status    *string `json:"status,omitempty"`    // requested | accepted | rejected
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
func (r *UpdateAppointmentRequest) ToUseCaseRequest(caller domain.Caller, appointmentID int64) (*updateAppointment.Request, error) {
	req := &updateAppointment.Request{
		Caller:        caller,
		AppointmentID: appointmentID,
		ServiceID:     r.ServiceID,
		Note:          r.Note,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &start
	}

	if r.Status != nil {
		status := domain.AppointmentStatus(*r.Status)
		req.Status = &status
	}

	return req, nil
}

func FromUseCaseResponse(resp *updateAppointment.Response) *AppointmentResponse {
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
