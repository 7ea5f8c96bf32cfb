package update_opening_hours

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	openingHoursRepo "github.com/m04kA/SMC-RepairBookingService/internal/infra/storage/openinghours"
	"github.com/m04kA/SMC-RepairBookingService/internal/scheduling"
	"github.com/m04kA/SMC-RepairBookingService/internal/service/guard"
	"github.com/m04kA/SMC-RepairBookingService/pkg/txmanager"
)

// UseCase изменение рабочих часов дня недели.
// Проверка и запись выполняются в одной сериализуемой транзакции.
type UseCase struct {
	openingHoursRepo OpeningHoursRepository
	guard            Guard
	txManager        TransactionManager
	logger           Logger
}

func NewUseCase(
	openingHoursRepo OpeningHoursRepository,
	guard Guard,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		openingHoursRepo: openingHoursRepo,
		guard:            guard,
		txManager:        txManager,
		logger:           logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateOpeningHours: weekday=%d, start=%v, end=%v by user=%d",
		req.Weekday, req.Start, req.End, req.Caller.UserID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateOpeningHours: validation failed: %v", err)
		return nil, err
	}

	if req.closes() {
		return uc.close(ctx, req.Weekday)
	}

	var result *domain.OpeningWindow
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Новое окно должно вмещать все записи на этот день недели
		if err := uc.guard.ValidateWindowChange(txCtx, req.Weekday, *req.Start, *req.End); err != nil {
			return err
		}

		// 2. Сохраняем
		saved, err := uc.openingHoursRepo.Upsert(txCtx, &domain.OpeningWindow{
			Weekday:   req.Weekday,
			StartTime: *req.Start,
			EndTime:   *req.End,
		})
		if err != nil {
			return err
		}

		result = saved
		return nil
	})

	if err != nil {
		return nil, uc.mapError(err)
	}

	uc.logger.Info("UpdateOpeningHours: weekday=%d set to %s-%s", result.Weekday, result.StartTime, result.EndTime)

	return &Response{
		Weekday:   result.Weekday,
		IsOpen:    true,
		Start:     result.StartTime,
		End:       result.EndTime,
		UpdatedAt: result.UpdatedAt,
	}, nil
}

// close делает день выходным. Повторное закрытие не ошибка.
func (uc *UseCase) close(ctx context.Context, weekday int) (*Response, error) {
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.guard.ValidateClosure(txCtx, weekday); err != nil {
			return err
		}

		err := uc.openingHoursRepo.Delete(txCtx, weekday)
		if err != nil && !errors.Is(err, openingHoursRepo.ErrOpeningHoursNotFound) {
			return err
		}
		return nil
	})

	if err != nil {
		return nil, uc.mapError(err)
	}

	uc.logger.Info("UpdateOpeningHours: weekday=%d closed", weekday)

	return &Response{Weekday: weekday, IsOpen: false}, nil
}

func (uc *UseCase) mapError(err error) error {
	switch {
	case errors.Is(err, scheduling.ErrInvalidWeekday),
		errors.Is(err, scheduling.ErrInvalidRange),
		errors.Is(err, scheduling.ErrIncompatibleExistingBookings),
		errors.Is(err, scheduling.ErrExistingBookingsPreventClosure):
		return err
	case errors.Is(err, guard.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, txmanager.ErrSerialization):
		uc.logger.Warn("UpdateOpeningHours: concurrent change: %v", err)
		return fmt.Errorf("%w: %v", ErrScheduleBusy, err)
	default:
		uc.logger.Error("UpdateOpeningHours: failed to update opening hours: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
