package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/code-redemption/internal/config"
	"github.com/iliyamo/code-redemption/internal/database"
	"github.com/iliyamo/code-redemption/internal/handler"
	"github.com/iliyamo/code-redemption/internal/queue"
	"github.com/iliyamo/code-redemption/internal/repository"
	"github.com/iliyamo/code-redemption/internal/router"
	"github.com/iliyamo/code-redemption/internal/service"
	"github.com/iliyamo/code-redemption/internal/utils"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	database.EnsureSchema(ctx, db)
	database.SeedIfEmpty(ctx, db)
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, response cache disabled")
	}

	productRepo := repository.NewProductRepo(db)
	accountRepo := repository.NewAccountRepo(db)
	codeRepo := repository.NewCodeRepo(db)
	messageRepo := repository.NewMessageRepo(db)
	statsRepo := repository.NewStatsRepo(db)

	verifier := utils.StaticVerifier{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		UserPassword:  cfg.UserPassword,
	}

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, verifier),
		Products: handler.NewProductHandler(productRepo),
		Accounts: handler.NewAccountHandler(accountRepo),
		Codes:    handler.NewCodeHandler(productRepo, accountRepo, codeRepo),
		Redeem:   handler.NewRedeemHandler(codeRepo, queue_publisher.Publisher{}),
		Messages: handler.NewMessageHandler(messageRepo),
		Stats:    handler.NewStatsHandler(statsRepo),
		Health:   handler.NewHealthHandler(statsRepo),
		Admin:    handler.NewAdminHandler(db),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORS())

	router.Register(e, h, cfg, config.LoadCacheConfig(), rdb)

	// Background consumer mirrors redemptions into logs/redemptions.log.
	go func() {
		if err := queue.StartRedemptionConsumer(); err != nil {
			log.Printf("redemption consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
