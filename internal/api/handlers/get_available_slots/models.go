package get_available_slots

import (
	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-RepairBookingService/internal/usecase/get_available_slots"
)

// SlotResponse свободный интервал для записи
type SlotResponse struct {
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "10:30"
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string         `json:"date"`
	ServiceID       int64          `json:"serviceId"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// FromUseCaseResponse собирает ленивую последовательность слотов в ответ
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	result := &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           []SlotResponse{},
	}

	for slot := range resp.Slots {
		result.Slots = append(result.Slots, SlotResponse{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		})
	}

	return result
}
