package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	"github.com/m04kA/SMC-RepairBookingService/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-RepairBookingService/internal/infra/storage/appointment"
	serviceRepo "github.com/m04kA/SMC-RepairBookingService/internal/infra/storage/service"
	userClient "github.com/m04kA/SMC-RepairBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-RepairBookingService/internal/scheduling"
	"github.com/m04kA/SMC-RepairBookingService/internal/service/guard"
	"github.com/m04kA/SMC-RepairBookingService/pkg/txmanager"
)

const operation = "create"

// UseCase use case для создания записи на ремонт
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	userClient      UserServiceClient
	guard           Guard
	txManager       TransactionManager
	locker          DateLocker
	metrics         Metrics
	logger          Logger

	requireApproval bool
}

// NewUseCase создает новый экземпляр use case.
// requireApproval: новые записи создаются в статусе requested и ждут подтверждения сотрудником.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	userClient UserServiceClient,
	guard Guard,
	txManager TransactionManager,
	locker DateLocker,
	metrics Metrics,
	logger Logger,
	requireApproval bool,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		userClient:      userClient,
		guard:           guard,
		txManager:       txManager,
		locker:          locker,
		metrics:         metrics,
		logger:          logger,
		requireApproval: requireApproval,
	}
}

// Execute выполняет use case создания записи.
// Проверка и вставка выполняются в сериализуемой транзакции под блокировкой даты.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%d, role=%s, vehicle=%d, service=%d, date=%s, time=%s",
		req.Caller.UserID, req.Caller.Role, req.VehicleID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	result, err := uc.execute(ctx, req)
	uc.observe(err)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d, %s %s-%s, status=%s",
		result.ID, result.AppointmentDate.Format(domain.DateFormat), result.StartTime, result.EndTime, result.Status)

	return fromDomain(result), nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Автомобиль и его владелец
	vehicle, err := uc.userClient.GetVehicle(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, userClient.ErrVehicleNotFound) {
			uc.logger.Warn("CreateAppointment: vehicle id=%d not found", req.VehicleID)
			return nil, ErrVehicleNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get vehicle id=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	// 3. Клиент может записать только свой автомобиль, сотрудник любой
	if !req.Caller.IsStaff() && vehicle.OwnerID != req.Caller.UserID {
		uc.logger.Warn("CreateAppointment: user=%d is not the owner of vehicle id=%d", req.Caller.UserID, req.VehicleID)
		return nil, ErrAccessDenied
	}

	// 4. Длительность услуги
	duration, err := uc.serviceRepo.GetDuration(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Конец записи; переход через полночь не помещается ни в одно окно
	endTime, err := req.StartTime.AddMinutes(duration)
	if err != nil {
		uc.logger.Warn("CreateAppointment: %s + %d min is past the end of day", req.StartTime, duration)
		return nil, fmt.Errorf("%w: %v", scheduling.ErrOutsideOpeningHours, err)
	}

	status := domain.StatusAccepted
	if uc.requireApproval {
		status = domain.StatusRequested
	}

	appointment := &domain.Appointment{
		AppointmentDate: req.Date,
		StartTime:       req.StartTime,
		EndTime:         endTime,
		ServiceID:       req.ServiceID,
		VehicleID:       req.VehicleID,
		OwnerID:         vehicle.OwnerID,
		Status:          status,
		Note:            req.Note,
	}

	// 6. Проверка и вставка под блокировкой даты
	var result *domain.Appointment
	err = uc.locker.WithDateLock(ctx, req.Date, func(lockCtx context.Context) error {
		return uc.txManager.DoSerializable(lockCtx, func(txCtx context.Context) error {
			// 6.1. Окно и пересечения (записи на дату читаются FOR UPDATE)
			if err := uc.guard.ValidateCreate(txCtx, req.Date, req.StartTime, endTime, nil); err != nil {
				return err
			}

			// 6.2. Сохраняем запись
			created, err := uc.appointmentRepo.Create(txCtx, appointment)
			if err != nil {
				return err
			}

			result = created
			return nil
		})
	})

	if err != nil {
		return nil, uc.mapError(err)
	}

	return result, nil
}

// mapError приводит ошибки проверки, блокировки и хранилища к ошибкам use case.
// Отказы Guard возвращаются как есть (scheduling.Err*).
func (uc *UseCase) mapError(err error) error {
	switch {
	case errors.Is(err, scheduling.ErrOutsideOpeningHours),
		errors.Is(err, scheduling.ErrOverlap):
		return err
	case errors.Is(err, appointmentRepo.ErrOverlapConstraint):
		uc.logger.Warn("CreateAppointment: rejected by overlap constraint: %v", err)
		return fmt.Errorf("%w: %v", scheduling.ErrOverlap, err)
	case errors.Is(err, lock.ErrLockNotAcquired),
		errors.Is(err, txmanager.ErrSerialization):
		uc.logger.Warn("CreateAppointment: concurrent schedule change: %v", err)
		return fmt.Errorf("%w: %v", ErrScheduleBusy, err)
	case errors.Is(err, guard.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
		return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
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
