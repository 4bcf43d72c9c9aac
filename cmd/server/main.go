package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HovVathana/shoppink-backend/config"
	"github.com/HovVathana/shoppink-backend/internal/app/controller"
	"github.com/HovVathana/shoppink-backend/internal/app/repository"
	"github.com/HovVathana/shoppink-backend/internal/app/service"
	"github.com/HovVathana/shoppink-backend/internal/db"
	"github.com/HovVathana/shoppink-backend/internal/router"
	"github.com/HovVathana/shoppink-backend/internal/scheduler"
	"github.com/HovVathana/shoppink-backend/internal/storage"
	"github.com/HovVathana/shoppink-backend/internal/websocket"
	"github.com/HovVathana/shoppink-backend/pkg/logger"
	"github.com/HovVathana/shoppink-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       "info",
		Format:      logFormat,
		EnableColor: cfg.Server.Environment == "development",
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}
	if err := db.Seed(); err != nil {
		logger.Fatal("Failed to seed database", err)
	}

	if err := redis.Init(&cfg.Redis); err != nil {
		// the cache and token blacklist degrade gracefully without it
		logger.Warn("Redis unavailable, continuing without cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer redis.Close()

	gdb := db.GetDB()

	userRepo := repository.NewUserRepository(gdb)
	productRepo := repository.NewProductRepository(gdb)
	groupRepo := repository.NewOptionGroupRepository(gdb)
	variantRepo := repository.NewVariantRepository(gdb)
	cartRepo := repository.NewCartRepository(gdb)
	orderRepo := repository.NewOrderRepository(gdb)
	driverRepo := repository.NewDriverRepository(gdb)

	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Stop()

	authService := service.NewAuthService(userRepo, &cfg.JWT)
	productService := service.NewProductService(productRepo)
	catalogService := service.NewCatalogService(groupRepo, variantRepo, productRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	orderService := service.NewOrderService(gdb, orderRepo, cartRepo, driverRepo, hub)
	driverService := service.NewDriverService(driverRepo)
	staffService := service.NewStaffService(userRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s3Storage, err := storage.NewS3Storage(ctx, &cfg.S3)
	if err != nil {
		logger.Fatal("Failed to initialize S3 storage", err)
	}

	auditor := scheduler.NewAllocationAuditor(productRepo, catalogService)
	if err := auditor.Start(); err != nil {
		logger.Fatal("Failed to start allocation auditor", err)
	}
	defer auditor.Stop()

	engine := router.New(
		cfg,
		controller.NewAuthController(authService),
		controller.NewProductController(productService),
		controller.NewCatalogController(catalogService),
		controller.NewCartController(cartService),
		controller.NewOrderController(orderService),
		controller.NewDriverController(driverService),
		controller.NewStaffController(staffService),
		controller.NewUploadController(s3Storage),
		hub,
	).Setup()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("Server starting", map[string]interface{}{
			"port":        cfg.Server.Port,
			"environment": cfg.Server.Environment,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server", nil)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", err)
	}
	logger.Info("Server stopped", nil)
}
