package handler

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/code-redemption/internal/database"
)

// AdminHandler hosts the destructive maintenance endpoints.
type AdminHandler struct {
	DB *sql.DB
}

func NewAdminHandler(db *sql.DB) *AdminHandler {
	return &AdminHandler{DB: db}
}

// ResetDatabase handles POST /api/reset-database.  Everything stored is
// dropped, the tables are recreated and the sample catalog reseeded.
func (h *AdminHandler) ResetDatabase(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := database.Reset(ctx, h.DB); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	database.SeedIfEmpty(ctx, h.DB)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Database reset successfully"})
}
