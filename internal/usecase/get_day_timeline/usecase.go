package get_day_timeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	openingHoursRepo "github.com/m04kA/SMC-RepairBookingService/internal/infra/storage/openinghours"
	"github.com/m04kA/SMC-RepairBookingService/internal/scheduling"
)

// UseCase расписание дня без привязки к услуге
type UseCase struct {
	appointmentRepo  AppointmentRepository
	openingHoursRepo OpeningHoursRepository
	logger           Logger
}

func NewUseCase(
	appointmentRepo AppointmentRepository,
	openingHoursRepo OpeningHoursRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		openingHoursRepo: openingHoursRepo,
		logger:           logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date := req.Date.Format(domain.DateFormat)
	uc.logger.Info("GetDayTimeline: date=%s", date)

	resp := &Response{
		Date:  req.Date,
		Slots: []domain.TimelineSlot{},
	}

	weekday := domain.WeekdayOf(req.Date)
	openingWindow, err := uc.openingHoursRepo.GetByWeekday(ctx, weekday)
	if err != nil {
		if errors.Is(err, openingHoursRepo.ErrOpeningHoursNotFound) {
			uc.logger.Info("GetDayTimeline: shop is closed on %s", date)
			return resp, nil
		}
		uc.logger.Error("GetDayTimeline: failed to get opening hours weekday=%d: %v", weekday, err)
		return nil, fmt.Errorf("%w: failed to get opening hours: %v", ErrInternal, err)
	}

	window, err := scheduling.WindowInterval(openingWindow)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.ListByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetDayTimeline: failed to get appointments for %s: %v", date, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	booked, err := scheduling.Bookings(appointments)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	resp.IsOpen = true
	resp.Open = openingWindow.StartTime
	resp.Close = openingWindow.EndTime
	resp.Slots = scheduling.DayTimeline(window, booked)

	return resp, nil
}
