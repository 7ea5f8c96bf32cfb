package shop

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RepairBookingService/internal/service/shop/models"
)

// Service публичные справочники мастерской: услуги и рабочие часы
type Service struct {
	serviceRepo      ServiceRepository
	openingHoursRepo OpeningHoursRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	serviceRepo ServiceRepository,
	openingHoursRepo OpeningHoursRepository,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo:      serviceRepo,
		openingHoursRepo: openingHoursRepo,
		logger:           logger,
	}
}

// ListServices возвращает каталог услуг
func (s *Service) ListServices(ctx context.Context) (*models.ServiceListResponse, error) {
	services, err := s.serviceRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// ListOpeningHours возвращает рабочие часы на всю неделю
func (s *Service) ListOpeningHours(ctx context.Context) (*models.OpeningHoursResponse, error) {
	windows, err := s.openingHoursRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("ListOpeningHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListOpeningHours - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWeek(windows), nil
}
