package set_opening_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RepairBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RepairBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	"github.com/m04kA/SMC-RepairBookingService/internal/scheduling"
	updateOpeningHours "github.com/m04kA/SMC-RepairBookingService/internal/usecase/update_opening_hours"
)

const (
	msgUnauthorized         = "требуется авторизация"
	msgInvalidWeekday       = "некорректный день недели, ожидается 0..6 (0 - воскресенье)"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidTime          = "некорректный формат времени, ожидается HH:MM"
	msgInvalidRange         = "начало рабочего дня должно быть раньше конца"
	msgInvalidInput         = "необходимо указать и начало, и конец рабочего дня"
	msgAccessDenied         = "изменять рабочие часы может только сотрудник"
	msgIncompatibleBookings = "существующие записи не помещаются в новые рабочие часы"
	msgBookingsPreventClose = "нельзя сделать день выходным, пока на него есть записи"
	msgScheduleBusy         = "расписание сейчас изменяется, повторите попытку"
)

type Handler struct {
	useCase UpdateOpeningHoursUseCase
	logger  Logger
}

func NewHandler(useCase UpdateOpeningHoursUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/opening-hours/{weekday}
// Тело {start, end}; без полей день закрывается так же, как через DELETE.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, weekday, ok := h.parse(w, r, "PUT")
	if !ok {
		return
	}

	var req SetOpeningHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("PUT /opening-hours/{weekday} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	start, end, err := req.toTimes()
	if err != nil {
		h.logger.Warn("PUT /opening-hours/{weekday} - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	h.execute(w, r, "PUT", &updateOpeningHours.Request{
		Caller:  caller,
		Weekday: weekday,
		Start:   start,
		End:     end,
	})
}

// HandleDelete DELETE /api/v1/opening-hours/{weekday}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	caller, weekday, ok := h.parse(w, r, "DELETE")
	if !ok {
		return
	}

	h.execute(w, r, "DELETE", &updateOpeningHours.Request{
		Caller:  caller,
		Weekday: weekday,
	})
}

func (h *Handler) parse(w http.ResponseWriter, r *http.Request, method string) (domain.Caller, int, bool) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return domain.Caller{}, 0, false
	}

	weekday, err := strconv.Atoi(mux.Vars(r)["weekday"])
	if err != nil || !domain.IsValidWeekday(weekday) {
		h.logger.Warn("%s /opening-hours/{weekday} - Invalid weekday: %q", method, mux.Vars(r)["weekday"])
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return domain.Caller{}, 0, false
	}

	return caller, weekday, true
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, method string, req *updateOpeningHours.Request) {
	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, updateOpeningHours.ErrAccessDenied):
			h.logger.Warn("%s /opening-hours/{weekday} - Access denied: user_id=%d", method, req.Caller.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, scheduling.ErrInvalidWeekday):
			handlers.RespondBadRequest(w, msgInvalidWeekday)

		case errors.Is(err, scheduling.ErrInvalidRange):
			h.logger.Warn("%s /opening-hours/{weekday} - Invalid range: weekday=%d", method, req.Weekday)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, updateOpeningHours.ErrInvalidInput):
			h.logger.Warn("%s /opening-hours/{weekday} - Invalid input: %v", method, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, scheduling.ErrIncompatibleExistingBookings):
			h.logger.Warn("%s /opening-hours/{weekday} - Incompatible existing appointments: weekday=%d", method, req.Weekday)
			handlers.RespondConflict(w, msgIncompatibleBookings)

		case errors.Is(err, scheduling.ErrExistingBookingsPreventClosure):
			h.logger.Warn("%s /opening-hours/{weekday} - Existing appointments prevent closure: weekday=%d", method, req.Weekday)
			handlers.RespondConflict(w, msgBookingsPreventClose)

		case errors.Is(err, updateOpeningHours.ErrScheduleBusy):
			h.logger.Warn("%s /opening-hours/{weekday} - Schedule busy: weekday=%d", method, req.Weekday)
			handlers.RespondConflict(w, msgScheduleBusy)

		default:
			h.logger.Error("%s /opening-hours/{weekday} - Failed to update opening hours: weekday=%d, error=%v",
				method, req.Weekday, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s /opening-hours/{weekday} - Opening hours updated successfully: weekday=%d, is_open=%t, user_id=%d",
		method, result.Weekday, result.IsOpen, req.Caller.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
