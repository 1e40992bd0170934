package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/code-redemption/internal/config"
)

func TestRedisCacheDisabledIsPassthrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !called {
		t.Fatal("next handler not invoked")
	}
	if rec.Header().Get("X-Cache") != "" {
		t.Fatalf("disabled cache set X-Cache: %q", rec.Header().Get("X-Cache"))
	}
}

func TestRedisCacheNilClientIsPassthrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: true}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := mw(func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
