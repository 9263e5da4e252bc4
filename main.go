package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"cftl_backend/internals/configs"
	database "cftl_backend/internals/databases"
	paymentRequestService "cftl_backend/internals/features/finance/payment_requests/service"
	"cftl_backend/internals/helpers/storage"
	middlewares "cftl_backend/internals/middlewares"
	authMw "cftl_backend/internals/middlewares/auth"
	routes "cftl_backend/internals/route"
	"cftl_backend/internals/seeds"
)

func main() {
	cfg := configs.LoadEnv()
	configs.InitLogger(cfg)

	// 🔌 DB connect + pool + schema
	database.ConnectDB(cfg)
	database.TunePool()
	database.WarmUpQueries()
	if err := database.AutoMigrate(database.DB); err != nil {
		configs.Log.Fatalf("❌ migration failed: %v", err)
	}
	seeds.RunAllSeeds(database.DB, cfg)

	// limiter counters are shared through redis when available
	var limiterStore fiber.Storage
	if rdb := configs.ConnectRedis(cfg); rdb != nil {
		store := middlewares.NewRedisStorage(rdb, "")
		defer store.Close()
		limiterStore = store
	}

	verifier, err := authMw.NewVerifier(context.Background(), cfg)
	if err != nil {
		configs.Log.Fatalf("❌ identity provider: %v", err)
	}

	var objects storage.ObjectStorage
	if oss, err := storage.NewOSSService(cfg); err != nil {
		configs.Log.WithError(err).Warn("object storage disabled, uploads are kept in memory")
		objects = storage.NewMemoryStorage("http://localhost:" + cfg.Port + "/files")
	} else {
		objects = oss
	}

	// 🧹 receipt reaper
	reaper := &storage.ReceiptReaper{
		Store:      objects,
		Referenced: paymentRequestService.ReceiptReferenced(database.DB),
		Retention:  time.Duration(cfg.ReaperRetentionDays) * 24 * time.Hour,
		DryRun:     cfg.ReaperDryRun,
	}
	reaperCron, err := storage.StartReceiptReaperCron(cfg, reaper)
	if err != nil {
		configs.Log.WithError(err).Error("receipt reaper not scheduled")
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            middlewares.ErrorHandler,
		BodyLimit:               int(storage.MaxImageUploadSize) + 1024*1024,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	middlewares.SetupMiddlewares(app, cfg, limiterStore)

	routes.SetupRoutes(app, database.DB, routes.Deps{
		Config:       cfg,
		Guards:       authMw.NewGuards(database.DB, verifier, cfg.JWTSecret),
		Storage:      objects,
		LimiterStore: limiterStore,
	})

	// 🔒 keep-alive and connection timeouts
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		configs.Log.Infof("✅ Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			configs.Log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	configs.Log.Info("shutting down")

	if reaperCron != nil {
		<-reaperCron.Stop().Done()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	database.Close(database.DB)
}
