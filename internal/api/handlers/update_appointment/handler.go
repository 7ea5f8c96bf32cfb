package update_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RepairBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RepairBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RepairBookingService/internal/scheduling"
	updateAppointment "github.com/m04kA/SMC-RepairBookingService/internal/usecase/update_appointment"
)

const (
	msgUnauthorized         = "требуется авторизация"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidFormat        = "некорректный формат даты (YYYY-MM-DD) или времени (HH:MM)"
	msgInvalidInput         = "некорректные параметры изменения записи"
	msgAppointmentNotFound  = "запись не найдена"
	msgServiceNotFound      = "услуга не найдена"
	msgAccessDenied         = "недостаточно прав для изменения записи"
	msgOverlap              = "новое время пересекается с существующей записью"
	msgOutsideOpeningHours  = "новое время вне рабочих часов мастерской"
	msgScheduleBusy         = "расписание сейчас изменяется, повторите попытку"
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	appointmentID, err := handlers.ParseID(mux.Vars(r)["appointmentId"])
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(caller, appointmentID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id} - Invalid input: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, updateAppointment.ErrServiceNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Service not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, updateAppointment.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id} - Access denied: user_id=%d, appointment_id=%d", caller.UserID, appointmentID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, scheduling.ErrOverlap):
			h.logger.Warn("PATCH /appointments/{id} - Overlap: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgOverlap)

		case errors.Is(err, scheduling.ErrOutsideOpeningHours):
			h.logger.Warn("PATCH /appointments/{id} - Outside opening hours: appointment_id=%d", appointmentID)
			handlers.RespondUnprocessable(w, msgOutsideOpeningHours)

		case errors.Is(err, updateAppointment.ErrScheduleBusy):
			h.logger.Warn("PATCH /appointments/{id} - Schedule busy: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgScheduleBusy)

		default:
			h.logger.Error("PATCH /appointments/{id} - Failed to update appointment: appointment_id=%d, request_id=%s, error=%v",
				appointmentID, middleware.GetRequestID(r.Context()), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id} - Appointment updated successfully: appointment_id=%d, user_id=%d",
		appointmentID, caller.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
