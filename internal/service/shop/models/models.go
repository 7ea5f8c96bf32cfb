package models

import (
	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
)

// ServiceResponse услуга мастерской
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// OpeningDayResponse рабочие часы дня недели (0 = воскресенье)
type OpeningDayResponse struct {
	Weekday int     `json:"weekday"`
	IsOpen  bool    `json:"isOpen"`
	Start   *string `json:"start,omitempty"` // "09:00"
	End     *string `json:"end,omitempty"`   // "18:00"
}

// OpeningHoursResponse неделя целиком, выходные дни с isOpen=false
type OpeningHoursResponse struct {
	Days []OpeningDayResponse `json:"days"`
}

// FromDomainServiceList конвертирует список услуг в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}
	for _, s := range services {
		resp.Services = append(resp.Services, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		})
	}
	return resp
}

// FromDomainWeek раскладывает окна по дням недели 0..6
func FromDomainWeek(windows []*domain.OpeningWindow) *OpeningHoursResponse {
	days := make([]OpeningDayResponse, 7)
	for i := range days {
		days[i].Weekday = i
	}

	for _, w := range windows {
		if !domain.IsValidWeekday(w.Weekday) {
			continue
		}
		start, end := w.StartTime.String(), w.EndTime.String()
		days[w.Weekday] = OpeningDayResponse{
			Weekday: w.Weekday,
			IsOpen:  true,
			Start:   &start,
			End:     &end,
		}
	}

	return &OpeningHoursResponse{Days: days}
}
