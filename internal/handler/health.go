package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/code-redemption/internal/repository"
)

// HealthHandler reports service liveness and database connectivity.
type HealthHandler struct {
	Stats *repository.StatsRepo
}

func NewHealthHandler(s *repository.StatsRepo) *HealthHandler {
	return &HealthHandler{Stats: s}
}

// Check handles GET /api/health.  A reachable database makes the
// service healthy; the table counts ride along for quick inspection.
func (h *HealthHandler) Check(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Stats.Ping(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}
	counts, err := h.Stats.Health(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"stats":     counts,
	})
}
