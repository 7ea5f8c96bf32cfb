package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	openingHoursRepo "github.com/m04kA/SMC-RepairBookingService/internal/infra/storage/openinghours"
	serviceRepo "github.com/m04kA/SMC-RepairBookingService/internal/infra/storage/service"
	"github.com/m04kA/SMC-RepairBookingService/internal/scheduling"
)

// UseCase use case для получения доступных слотов под услугу на дату
type UseCase struct {
	appointmentRepo  AppointmentRepository
	openingHoursRepo OpeningHoursRepository
	serviceRepo      ServiceRepository
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	openingHoursRepo OpeningHoursRepository,
	serviceRepo ServiceRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		openingHoursRepo: openingHoursRepo,
		serviceRepo:      serviceRepo,
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s", req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	resp := &Response{
		Date:      req.Date,
		ServiceID: req.ServiceID,
		Slots:     slices.Values([]domain.Slot{}),
	}

	// 2. Рабочее окно на день недели. Выходной - пустой результат для любой услуги
	weekday := domain.WeekdayOf(req.Date)
	openingWindow, err := uc.openingHoursRepo.GetByWeekday(ctx, weekday)
	if err != nil {
		if errors.Is(err, openingHoursRepo.ErrOpeningHoursNotFound) {
			uc.logger.Info("GetAvailableSlots: shop is closed on %s", req.Date.Format(domain.DateFormat))
			return resp, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get opening hours weekday=%d: %v", weekday, err)
		return nil, fmt.Errorf("%w: failed to get opening hours: %v", ErrInternal, err)
	}

	window, err := scheduling.WindowInterval(openingWindow)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid opening hours weekday=%d: %v", weekday, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Длительность услуги
	duration, err := uc.serviceRepo.GetDuration(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	resp.DurationMinutes = duration

	// 4. Записи на дату (по возрастанию начала)
	appointments, err := uc.appointmentRepo.ListByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	booked, err := scheduling.Bookings(appointments)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid appointment interval: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 5. Слоты
	resp.Slots = scheduling.ServiceSlots(window, booked, duration)

	uc.logger.Info("GetAvailableSlots: %d appointments on %s, window %s-%s",
		len(booked), req.Date.Format(domain.DateFormat), openingWindow.StartTime, openingWindow.EndTime)

	return resp, nil
}
