package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// dbTimeout bounds the database round trips made by a single handler
// invocation.
const dbTimeout = 5 * time.Second

// reqCtx derives a timeout-bounded context from the incoming request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// pathID parses a positive numeric path parameter.  Zero is returned
// with ok=false for anything that is not a positive integer.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
