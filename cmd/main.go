package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront-service/internal/cart"
	"storefront-service/internal/catalog"
	"storefront-service/internal/config"
	"storefront-service/internal/events"
	"storefront-service/internal/handlers"
	"storefront-service/internal/middleware"
	"storefront-service/internal/repository"
	"storefront-service/internal/services"
	"storefront-service/internal/storage"
	"storefront-service/internal/translation"
	"storefront-service/internal/voice"
	"storefront-service/internal/widget"
)

// @title Storefront API
// @version 1.0.0
// @description Bilingual voice storefront with merchant catalog administration

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	logger := logrus.New()
	if cfg.Environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	// Key-value storage backend
	kv, closeStorage, err := config.NewStorage(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize storage")
	}
	defer closeStorage()
	logger.WithField("driver", cfg.StorageDriver).Info("✓ Storage initialized")

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	if pg, ok := kv.(*storage.PostgresStore); ok && cfg.StorageTTL > 0 {
		go pg.RunPurge(rootCtx, time.Hour, logger)
	}

	// Translations
	registry := translation.NewRegistry(kv, logger)
	registry.Load(rootCtx)

	// Catalog events (optional)
	var publisher *events.Publisher
	if cfg.NATSURL != "" {
		publisher, err = events.NewPublisher(cfg.NATSURL, logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize events publisher (events won't be published)")
			publisher = nil
		} else {
			defer publisher.Close()
			logger.Info("✓ NATS events publisher initialized")
		}
	}

	// Services
	catalogs := catalog.NewManager(kv, logger)
	merchantRepo := repository.NewMerchantRepository(kv)
	authService := services.NewAuthService(merchantRepo, cfg.JWTSecret, cfg.SessionTTL, logger)
	catalogService := services.NewCatalogService(catalogs, registry, publisher, logger)

	// Visitor state
	carts := cart.NewSessions(cfg.CartIdleTTL, logger)
	go carts.Run(rootCtx, 10*time.Minute)

	voiceCfg := voice.Config{
		EnglishAgentID: cfg.EnglishAgentID,
		ArabicAgentID:  cfg.ArabicAgentID,
		Demo:           cfg.VoiceDemoMode(),
	}
	if voiceCfg.Demo {
		logger.Warn("Voice agent credentials missing, running in demo mode")
	}
	hub := voice.NewHub(func() voice.Agent { return voice.NewDemoAgent() }, voiceCfg, cfg.VoiceIdleTTL, logger)
	go hub.Run(rootCtx, time.Minute)

	// Handlers
	routes := handlers.Routes{
		Health:     handlers.NewHealthHandler(kv),
		Auth:       handlers.NewAuthHandler(authService, catalogs, logger),
		Catalog:    handlers.NewCatalogHandler(catalogService),
		Transfer:   handlers.NewTransferHandler(catalogService, logger),
		Widget:     handlers.NewWidgetHandler(widget.NewRepository(kv), cfg.WidgetScriptURL, logger),
		Storefront: handlers.NewStorefrontHandler(catalogService),
		Cart:       handlers.NewCartHandler(catalogService, carts),
		Voice:      handlers.NewVoiceHandler(catalogService, hub, cfg.VoicePollInterval, logger),

		Tokens:      authService,
		AuthLimiter: middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthBurst),
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	handlers.RegisterRoutes(router, routes)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Port).Info("Storefront service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hub.Close(ctx)
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
	logger.Info("Server exited")
}
