package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	"github.com/m04kA/SMC-RepairBookingService/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-RepairBookingService/internal/infra/storage/appointment"
	serviceRepo "github.com/m04kA/SMC-RepairBookingService/internal/infra/storage/service"
	"github.com/m04kA/SMC-RepairBookingService/internal/scheduling"
	"github.com/m04kA/SMC-RepairBookingService/internal/service/guard"
	"github.com/m04kA/SMC-RepairBookingService/pkg/txmanager"
)

const operation = "update"

// UseCase изменение записи: перенос, смена услуги, статуса или комментария
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	guard           Guard
	txManager       TransactionManager
	locker          DateLocker
	metrics         Metrics
	logger          Logger
}

func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	guard Guard,
	txManager TransactionManager,
	locker DateLocker,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		guard:           guard,
		txManager:       txManager,
		locker:          locker,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute применяет изменения. При переносе интервал пересчитывается
// (end = start + длительность услуги) и проверяется Guard без учета самой записи.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: id=%d by user=%d, role=%s", req.AppointmentID, req.Caller.UserID, req.Caller.Role)

	result, err := uc.execute(ctx, req)
	uc.observe(err)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: successfully updated appointment id=%d, %s %s-%s, status=%s",
		result.ID, result.AppointmentDate.Format(domain.DateFormat), result.StartTime, result.EndTime, result.Status)

	return fromDomain(result), nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущая запись (нужна дата для блокировки и проверка прав)
	current, err := uc.getAppointment(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}

	if err := checkAccess(req.Caller, current, req); err != nil {
		uc.logger.Warn("UpdateAppointment: access denied for user=%d to appointment id=%d: %v",
			req.Caller.UserID, req.AppointmentID, err)
		return nil, err
	}

	// 3. Без переноса расписание не меняется, блокировка дат не нужна
	if !req.reschedules() {
		var result *domain.Appointment
		err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			updated, err := uc.appointmentRepo.Update(txCtx, req.AppointmentID, domain.AppointmentUpdate{
				Status: req.Status,
				Note:   req.Note,
			})
			if err != nil {
				return err
			}
			result = updated
			return nil
		})
		if err != nil {
			return nil, uc.mapError(err)
		}
		return result, nil
	}

	// 4. Перенос: блокируем старую и новую даты
	dates := []time.Time{current.AppointmentDate}
	if req.Date != nil {
		dates = append(dates, *req.Date)
	}

	var result *domain.Appointment
	err = uc.locker.WithDateLocks(ctx, dates, func(lockCtx context.Context) error {
		return uc.txManager.DoSerializable(lockCtx, func(txCtx context.Context) error {
			// 4.1. Перечитываем запись под блокировкой строки
			fresh, err := uc.getAppointment(txCtx, req.AppointmentID)
			if err != nil {
				return err
			}

			upd, err := uc.reschedule(txCtx, fresh, req)
			if err != nil {
				return err
			}

			// 4.2. Проверка нового интервала без учета самой записи
			if err := uc.guard.ValidateCreate(txCtx, *upd.AppointmentDate, *upd.StartTime, *upd.EndTime, &fresh.ID); err != nil {
				return err
			}

			// 4.3. Сохраняем
			updated, err := uc.appointmentRepo.Update(txCtx, req.AppointmentID, upd)
			if err != nil {
				return err
			}

			result = updated
			return nil
		})
	})

	if err != nil {
		return nil, uc.mapError(err)
	}

	return result, nil
}

// reschedule собирает изменение с пересчитанным концом интервала
func (uc *UseCase) reschedule(ctx context.Context, current *domain.Appointment, req *Request) (domain.AppointmentUpdate, error) {
	date := current.AppointmentDate
	if req.Date != nil {
		date = *req.Date
	}

	start := current.StartTime
	if req.StartTime != nil {
		start = *req.StartTime
	}

	serviceID := current.ServiceID
	if req.ServiceID != nil {
		serviceID = *req.ServiceID
	}

	duration, err := uc.serviceRepo.GetDuration(ctx, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("UpdateAppointment: service id=%d not found", serviceID)
			return domain.AppointmentUpdate{}, ErrServiceNotFound
		}
		return domain.AppointmentUpdate{}, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	end, err := start.AddMinutes(duration)
	if err != nil {
		return domain.AppointmentUpdate{}, fmt.Errorf("%w: %v", scheduling.ErrOutsideOpeningHours, err)
	}

	return domain.AppointmentUpdate{
		AppointmentDate: &date,
		StartTime:       &start,
		EndTime:         &end,
		ServiceID:       &serviceID,
		Status:          req.Status,
		Note:            req.Note,
	}, nil
}

func (uc *UseCase) getAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, err := uc.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("UpdateAppointment: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("UpdateAppointment: failed to get appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
	}
	return appointment, nil
}

func (uc *UseCase) mapError(err error) error {
	switch {
	case errors.Is(err, lock.ErrLockNotAcquired),
		errors.Is(err, txmanager.ErrSerialization):
		uc.logger.Warn("UpdateAppointment: concurrent schedule change: %v", err)
		return fmt.Errorf("%w: %v", ErrScheduleBusy, err)
	case errors.Is(err, ErrAppointmentNotFound),
		errors.Is(err, ErrServiceNotFound),
		errors.Is(err, ErrInternal),
		errors.Is(err, scheduling.ErrOutsideOpeningHours),
		errors.Is(err, scheduling.ErrOverlap):
		return err
	case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
		return ErrAppointmentNotFound
	case errors.Is(err, appointmentRepo.ErrOverlapConstraint):
		uc.logger.Warn("UpdateAppointment: rejected by overlap constraint: %v", err)
		return fmt.Errorf("%w: %v", scheduling.ErrOverlap, err)
	case errors.Is(err, guard.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("UpdateAppointment: failed to update appointment: %v", err)
		return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
	}
}

func (uc *UseCase) observe(err error) {
	if uc.metrics == nil {
		return
	}
	switch {
	case err == nil:
		uc.metrics.IncAppointmentOperation(operation, "success")
	case errors.Is(err, ErrInternal):
		uc.metrics.IncAppointmentOperation(operation, "error")
	default:
		uc.metrics.IncAppointmentOperation(operation, "rejected")
	}
}
