package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/code-redemption/internal/repository"
)

// StatsHandler serves the dashboard counters.
type StatsHandler struct {
	Stats *repository.StatsRepo
}

func NewStatsHandler(s *repository.StatsRepo) *StatsHandler {
	return &StatsHandler{Stats: s}
}

// Overview handles GET /api/stats.
func (h *StatsHandler) Overview(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	stats, err := h.Stats.Overview(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, stats)
}
