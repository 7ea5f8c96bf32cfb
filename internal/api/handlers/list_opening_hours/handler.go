package list_opening_hours

import (
	"net/http"

	"github.com/m04kA/SMC-RepairBookingService/internal/api/handlers"
)

type Handler struct {
	service ShopService
	logger  Logger
}

func NewHandler(service ShopService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/opening-hours
// Возвращает все 7 дней недели, выходные с isOpen=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListOpeningHours(r.Context())
	if err != nil {
		h.logger.Error("GET /opening-hours - Failed to list opening hours: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /opening-hours - Opening hours retrieved successfully")
	handlers.RespondJSON(w, http.StatusOK, result)
}
