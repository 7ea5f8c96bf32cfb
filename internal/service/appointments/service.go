package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-RepairBookingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-RepairBookingService/internal/service/appointments/models"
)

// Service сервис для чтения и удаления записей
type Service struct {
	appointmentRepo AppointmentRepository
	metrics         Metrics
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		metrics:         metrics,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Клиент видит только свои записи, сотрудник любые
func (s *Service) GetByID(ctx context.Context, id int64, caller domain.Caller) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, caller.UserID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !caller.IsStaff() && !appointment.IsOwnedBy(caller.UserID) {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", caller.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appointment), nil
}

// List возвращает записи: сотруднику на дату, клиенту его собственные
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	if req.Caller.IsStaff() {
		if req.Date == nil {
			s.logger.Warn("List: staff user=%d requested appointments without date", req.Caller.UserID)
			return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
		}

		s.logger.Info("List: fetching appointments for date=%s by staff user=%d",
			req.Date.Format(domain.DateFormat), req.Caller.UserID)

		appointments, err := s.appointmentRepo.ListByDate(ctx, *req.Date)
		if err != nil {
			s.logger.Error("List: repository error for date=%s: %v", req.Date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
		}

		return models.FromDomainAppointmentList(appointments), nil
	}

	s.logger.Info("List: fetching appointments of user=%d", req.Caller.UserID)

	appointments, err := s.appointmentRepo.ListByOwner(ctx, req.Caller.UserID)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", req.Caller.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	if req.Date != nil {
		filtered := appointments[:0]
		for _, a := range appointments {
			if a.AppointmentDate.Format(domain.DateFormat) == req.Date.Format(domain.DateFormat) {
				filtered = append(filtered, a)
			}
		}
		appointments = filtered
	}

	s.logger.Info("List: fetched %d appointments for user=%d", len(appointments), req.Caller.UserID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Delete удаляет запись. Доступно только сотрудникам.
// Освободившийся интервал сразу становится доступен для записи.
func (s *Service) Delete(ctx context.Context, id int64, caller domain.Caller) error {
	s.logger.Info("Delete: deleting appointment id=%d by user=%d", id, caller.UserID)

	err := s.delete(ctx, id, caller)
	s.observe(err)
	return err
}

func (s *Service) delete(ctx context.Context, id int64, caller domain.Caller) error {
	if !caller.IsStaff() {
		s.logger.Warn("Delete: user=%d is not staff", caller.UserID)
		return ErrAccessDenied
	}

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted appointment id=%d", id)
	return nil
}

func (s *Service) observe(err error) {
	if s.metrics == nil {
		return
	}
	switch {
	case err == nil:
		s.metrics.IncAppointmentOperation("delete", "success")
	case errors.Is(err, ErrInternal):
		s.metrics.IncAppointmentOperation("delete", "error")
	default:
		s.metrics.IncAppointmentOperation("delete", "rejected")
	}
}
