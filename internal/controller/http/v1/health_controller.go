package httpv1

import (
	"context"
	"net/http"
	"time"

	"github.com/jacostamo01/CalculadoraNoviembre01/internal/service"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

const healthPingTimeout = 2 * time.Second

type HealthController struct {
	opLogService service.OperationLog
}

func NewHealthController(ls service.OperationLog) *HealthController {
	return &HealthController{opLogService: ls}
}

// Health reports liveness. The store ping is informational only.
func (h *HealthController) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthPingTimeout)
	defer cancel()

	if err := h.opLogService.Ping(ctx); err != nil {
		log.WithError(err).Warn("Health check: store ping failed")
	}
	return respondMessage(c, http.StatusOK, msgAlive)
}

func (h *HealthController) Ping(c echo.Context) error {
	return respondMessage(c, http.StatusOK, msgAlive)
}
