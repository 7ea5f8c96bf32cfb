package get_day_timeline

import (
	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	getDayTimeline "github.com/m04kA/SMC-RepairBookingService/internal/usecase/get_day_timeline"
)

// TimelineSlotResponse элемент расписания: свободный слот или занятый интервал
type TimelineSlotResponse struct {
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	Bookable      bool   `json:"bookable"`
	AppointmentID *int64 `json:"appointmentId,omitempty"`
}

// TimelineResponse HTTP response model
type TimelineResponse struct {
	Date   string                 `json:"date"`
	IsOpen bool                   `json:"isOpen"`
	Open   *string                `json:"open,omitempty"`
	Close  *string                `json:"close,omitempty"`
	Slots  []TimelineSlotResponse `json:"slots"`
}

func FromUseCaseResponse(resp *getDayTimeline.Response) *TimelineResponse {
	result := &TimelineResponse{
		Date:   resp.Date.Format(domain.DateFormat),
		IsOpen: resp.IsOpen,
		Slots:  make([]TimelineSlotResponse, 0, len(resp.Slots)),
	}

	if resp.IsOpen {
		open, closeAt := resp.Open.String(), resp.Close.String()
		result.Open = &open
		result.Close = &closeAt
	}

	for _, s := range resp.Slots {
		result.Slots = append(result.Slots, TimelineSlotResponse{
			StartTime:     s.StartTime.String(),
			EndTime:       s.EndTime.String(),
			Bookable:      s.Bookable,
			AppointmentID: s.AppointmentID,
		})
	}

	return result
}
