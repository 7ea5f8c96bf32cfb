package list_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RepairBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RepairBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RepairBookingService/internal/service/appointments"
	"github.com/m04kA/SMC-RepairBookingService/internal/service/appointments/models"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateRequired = "для сотрудника дата обязательна"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments
// Query params: date (YYYY-MM-DD). Сотруднику обязателен, клиенту фильтрует его записи.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	req := &models.ListRequest{Caller: caller}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := handlers.ParseDate(dateStr)
		if err != nil {
			h.logger.Warn("GET /appointments - Invalid date format: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Date required: user_id=%d", caller.UserID)
			handlers.RespondBadRequest(w, msgDateRequired)

		default:
			h.logger.Error("GET /appointments - Failed to list appointments: user_id=%d, error=%v", caller.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved successfully: user_id=%d, count=%d",
		caller.UserID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
