package set_opening_hours

import (
	updateOpeningHours "github.com/m04kA/SMC-RepairBookingService/internal/usecase/update_opening_hours"
	"github.com/m04kA/SMC-RepairBookingService/pkg/types"
)

// SetOpeningHoursRequest HTTP request model. Оба поля пустые - день становится выходным.
type SetOpeningHoursRequest struct {
	Start *string `json:"start,omitempty"` // "09:00"
	End   *string `json:"end,omitempty"`   // "18:00"
}

// OpeningDayResponse HTTP response model
type OpeningDayResponse struct {
	Weekday int     `json:"weekday"`
	IsOpen  bool    `json:"isOpen"`
	Start   *string `json:"start,omitempty"`
	End     *string `json:"end,omitempty"`
}

// toTimes разбирает время. Ошибка формата вернется как types.ErrInvalidFormat.
func (r *SetOpeningHoursRequest) toTimes() (start, end *types.TimeString, err error) {
	if r.Start != nil {
		t, err := types.NewTimeStringFromString(*r.Start)
		if err != nil {
			return nil, nil, err
		}
		start = &t
	}
	if r.End != nil {
		t, err := types.NewTimeStringFromString(*r.End)
		if err != nil {
			return nil, nil, err
		}
		end = &t
	}
	return start, end, nil
}

func FromUseCaseResponse(resp *updateOpeningHours.Response) *OpeningDayResponse {
	result := &OpeningDayResponse{
		Weekday: resp.Weekday,
		IsOpen:  resp.IsOpen,
	}
	if resp.IsOpen {
		start, end := resp.Start.String(), resp.End.String()
		result.Start = &start
		result.End = &end
	}
	return result
}
