package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/code-redemption/internal/config"
	"github.com/iliyamo/code-redemption/internal/handler"
	"github.com/iliyamo/code-redemption/internal/middleware"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth     *handler.AuthHandler
	Products *handler.ProductHandler
	Accounts *handler.AccountHandler
	Codes    *handler.CodeHandler
	Redeem   *handler.RedeemHandler
	Messages *handler.MessageHandler
	Stats    *handler.StatsHandler
	Health   *handler.HealthHandler
	Admin    *handler.AdminHandler
}

// Register mounts all routes under /api.  Public endpoints cover login,
// the catalog, redemption and the support log; everything that mutates
// the catalog or reads credentials sits behind JWT auth plus the admin
// role.  The Redis cache fronts the two read-heavy public GETs.
func Register(e *echo.Echo, h Handlers, cfg config.Config, cacheCfg config.CacheConfig, rdb *redis.Client) {
	api := e.Group("/api")
	cache := middleware.NewRedisCache(cacheCfg, rdb)

	// Public surface.
	api.POST("/login", h.Auth.Login)
	api.GET("/products", h.Products.List, cache)
	api.POST("/redeem", h.Redeem.Redeem)
	api.POST("/messages", h.Messages.Post)
	api.GET("/messages", h.Messages.List)
	api.GET("/stats", h.Stats.Overview, cache)
	api.GET("/health", h.Health.Check)

	// Admin surface.  JWTAuth validates the bearer token and RequireRole
	// rejects non-admin subjects.
	admin := api.Group("", middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole("admin"))
	admin.POST("/products", h.Products.Create)
	admin.PUT("/products/:id", h.Products.Update)
	admin.DELETE("/products/:id", h.Products.Delete)
	admin.GET("/products/:id/accounts", h.Accounts.ListByProduct)
	admin.GET("/products/:id/available-accounts", h.Accounts.ListAvailableByProduct)
	admin.POST("/accounts", h.Accounts.Create)
	admin.POST("/accounts/bulk", h.Accounts.Bulk)
	admin.POST("/accounts/import", h.Accounts.Import)
	admin.DELETE("/accounts/:id", h.Accounts.Delete)
	admin.POST("/codes/generate", h.Codes.Generate)
	admin.POST("/codes/generate-multiple", h.Codes.GenerateBatch)
	admin.GET("/codes/:product_id", h.Codes.ListByProduct)
	admin.GET("/messages/unread/count", h.Messages.UnreadCount)
	admin.PUT("/messages/:id/read", h.Messages.MarkRead)
	admin.POST("/reset-database", h.Admin.ResetDatabase)
}
