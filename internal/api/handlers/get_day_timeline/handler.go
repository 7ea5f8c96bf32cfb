package get_day_timeline

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RepairBookingService/internal/api/handlers"
	getDayTimeline "github.com/m04kA/SMC-RepairBookingService/internal/usecase/get_day_timeline"
)

const (
	msgMissingDate = "дата обязательна"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetDayTimelineUseCase
	logger  Logger
}

func NewHandler(useCase GetDayTimelineUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/timeline?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /timeline - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /timeline - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getDayTimeline.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getDayTimeline.ErrInvalidInput):
			h.logger.Warn("GET /timeline - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /timeline - Failed to build timeline: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /timeline - Timeline retrieved successfully: date=%s, is_open=%t, entries=%d",
		dateStr, result.IsOpen, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
