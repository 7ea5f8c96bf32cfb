package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RepairBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RepairBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RepairBookingService/internal/scheduling"
	createAppointment "github.com/m04kA/SMC-RepairBookingService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-RepairBookingService/pkg/types"
)

const (
	msgUnauthorized        = "требуется авторизация"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты записи, ожидается YYYY-MM-DD"
	msgInvalidTime         = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput        = "некорректные параметры записи"
	msgOverlap             = "выбранное время пересекается с существующей записью"
	msgOutsideOpeningHours = "выбранное время вне рабочих часов мастерской"
	msgScheduleBusy        = "расписание на эту дату сейчас изменяется, повторите попытку"
	msgServiceNotFound     = "услуга не найдена"
	msgVehicleNotFound     = "автомобиль не найден"
	msgAccessDenied        = "нельзя записать чужой автомобиль"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(caller)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		if errors.Is(err, types.ErrInvalidFormat) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: user_id=%d, error=%v", caller.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, scheduling.ErrOverlap):
			h.logger.Warn("POST /appointments - Overlap: user_id=%d, date=%s, start=%s", caller.UserID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgOverlap)

		case errors.Is(err, scheduling.ErrOutsideOpeningHours):
			h.logger.Warn("POST /appointments - Outside opening hours: user_id=%d, date=%s, start=%s", caller.UserID, req.Date, req.StartTime)
			handlers.RespondUnprocessable(w, msgOutsideOpeningHours)

		case errors.Is(err, createAppointment.ErrScheduleBusy):
			h.logger.Warn("POST /appointments - Schedule busy: user_id=%d, date=%s", caller.UserID, req.Date)
			handlers.RespondConflict(w, msgScheduleBusy)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrVehicleNotFound):
			h.logger.Warn("POST /appointments - Vehicle not found: vehicle_id=%d", req.VehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, createAppointment.ErrAccessDenied):
			h.logger.Warn("POST /appointments - Access denied: user_id=%d, vehicle_id=%d", caller.UserID, req.VehicleID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: user_id=%d, request_id=%s, error=%v",
				caller.UserID, middleware.GetRequestID(r.Context()), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, user_id=%d, %s %s-%s",
		result.ID, caller.UserID, req.Date, result.StartTime, result.EndTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
