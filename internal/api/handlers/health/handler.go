package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RepairBookingService/internal/api/handlers"
)

const (
	statusOK          = "ok"
	statusUnavailable = "unavailable"

	pingTimeout = 2 * time.Second
)

// StatusResponse HTTP response model
type StatusResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type Handler struct {
	pingers map[string]Pinger
	logger  Logger
}

// NewHandler pingers - проверяемые зависимости по имени (postgres, redis)
func NewHandler(pingers map[string]Pinger, logger Logger) *Handler {
	return &Handler{
		pingers: pingers,
		logger:  logger,
	}
}

// Live GET /health/live
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, StatusResponse{Status: statusOK})
}

// Ready GET /health/ready
// 503, если хотя бы одна зависимость не отвечает
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	resp := StatusResponse{Status: statusOK, Checks: make(map[string]string, len(h.pingers))}
	for name, p := range h.pingers {
		if err := p.PingContext(ctx); err != nil {
			h.logger.Warn("GET /health/ready - %s is unavailable: %v", name, err)
			resp.Checks[name] = statusUnavailable
			resp.Status = statusUnavailable
			continue
		}
		resp.Checks[name] = statusOK
	}

	if resp.Status != statusOK {
		handlers.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}
