package guard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	openingHoursRepo "github.com/m04kA/SMC-RepairBookingService/internal/infra/storage/openinghours"
	"github.com/m04kA/SMC-RepairBookingService/internal/scheduling"
	"github.com/m04kA/SMC-RepairBookingService/pkg/types"
)

// Guard проверяет изменения расписания до записи в БД. Сам ничего не изменяет.
// Отказы возвращаются как ошибки пакета scheduling (ErrOverlap, ErrOutsideOpeningHours, ...).
type Guard struct {
	appointmentRepo  AppointmentRepository
	openingHoursRepo OpeningHoursRepository
	metrics          Metrics
	logger           Logger
}

func NewGuard(
	appointmentRepo AppointmentRepository,
	openingHoursRepo OpeningHoursRepository,
	metrics Metrics,
	logger Logger,
) *Guard {
	return &Guard{
		appointmentRepo:  appointmentRepo,
		openingHoursRepo: openingHoursRepo,
		metrics:          metrics,
		logger:           logger,
	}
}

// ValidateCreate проверяет, что [start, end) на дату помещается в рабочее окно
// и не пересекается с другими записями. excludeID исключает саму переносимую запись.
func (g *Guard) ValidateCreate(ctx context.Context, date time.Time, start, end types.TimeString, excludeID *int64) error {
	proposed, err := toInterval(start, end)
	if err != nil {
		return err
	}

	weekday := domain.WeekdayOf(date)

	// 1. Рабочее окно дня (nil = выходной)
	var window *scheduling.Interval
	openingWindow, err := g.openingHoursRepo.GetByWeekday(ctx, weekday)
	switch {
	case errors.Is(err, openingHoursRepo.ErrOpeningHoursNotFound):
	case err != nil:
		g.logger.Error("Guard.ValidateCreate: failed to get opening hours weekday=%d: %v", weekday, err)
		return fmt.Errorf("%w: get opening hours: %w", ErrInternal, err)
	default:
		w, err := scheduling.WindowInterval(openingWindow)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		window = &w
	}

	// 2. Записи на дату
	appointments, err := g.appointmentRepo.ListByDate(ctx, date)
	if err != nil {
		g.logger.Error("Guard.ValidateCreate: failed to list appointments date=%s: %v", date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: list appointments: %w", ErrInternal, err)
	}

	booked, err := scheduling.Bookings(appointments)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Проверка
	if err := scheduling.CheckPlacement(window, proposed, booked, excludeID); err != nil {
		g.reject(err)
		g.logger.Warn("Guard.ValidateCreate: rejected date=%s, %s-%s: %v", date.Format(domain.DateFormat), start, end, err)
		return err
	}

	return nil
}

// ValidateWindowChange проверяет новое окно для дня недели: корректность и то,
// что все существующие записи на этот день недели в него помещаются
func (g *Guard) ValidateWindowChange(ctx context.Context, weekday int, start, end types.TimeString) error {
	window, err := toInterval(start, end)
	if err != nil {
		return err
	}

	if err := scheduling.ValidateWindow(weekday, window); err != nil {
		return err
	}

	appointments, err := g.appointmentRepo.ListByWeekday(ctx, weekday)
	if err != nil {
		g.logger.Error("Guard.ValidateWindowChange: failed to list appointments weekday=%d: %v", weekday, err)
		return fmt.Errorf("%w: list appointments: %w", ErrInternal, err)
	}

	existing, err := scheduling.Bookings(appointments)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if err := scheduling.CheckWindowChange(window, existing); err != nil {
		g.reject(err)
		g.logger.Warn("Guard.ValidateWindowChange: rejected weekday=%d, %s-%s: %v", weekday, start, end, err)
		return err
	}

	return nil
}

// ValidateClosure запрещает делать день выходным, если на него есть записи
func (g *Guard) ValidateClosure(ctx context.Context, weekday int) error {
	if !domain.IsValidWeekday(weekday) {
		return fmt.Errorf("%w: %d", scheduling.ErrInvalidWeekday, weekday)
	}

	count, err := g.appointmentRepo.CountByWeekday(ctx, weekday)
	if err != nil {
		g.logger.Error("Guard.ValidateClosure: failed to count appointments weekday=%d: %v", weekday, err)
		return fmt.Errorf("%w: count appointments: %w", ErrInternal, err)
	}

	if err := scheduling.CheckClosure(count); err != nil {
		g.reject(err)
		g.logger.Warn("Guard.ValidateClosure: rejected weekday=%d: %v", weekday, err)
		return err
	}

	return nil
}

func (g *Guard) reject(err error) {
	if g.metrics == nil {
		return
	}
	switch {
	case errors.Is(err, scheduling.ErrOutsideOpeningHours):
		g.metrics.IncGuardRejection("outside_opening_hours")
	case errors.Is(err, scheduling.ErrOverlap):
		g.metrics.IncGuardRejection("overlap")
	case errors.Is(err, scheduling.ErrIncompatibleExistingBookings):
		g.metrics.IncGuardRejection("incompatible_existing_bookings")
	case errors.Is(err, scheduling.ErrExistingBookingsPreventClosure):
		g.metrics.IncGuardRejection("existing_bookings_prevent_closure")
	}
}

func toInterval(start, end types.TimeString) (scheduling.Interval, error) {
	s, err := start.Minutes()
	if err != nil {
		return scheduling.Interval{}, fmt.Errorf("%w: start: %v", ErrInvalidInput, err)
	}
	e, err := end.Minutes()
	if err != nil {
		return scheduling.Interval{}, fmt.Errorf("%w: end: %v", ErrInvalidInput, err)
	}
	return scheduling.Interval{Start: s, End: e}, nil
}
