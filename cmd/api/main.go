package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/maliksarmad/retailpos-api/internal/application/service"
	"github.com/maliksarmad/retailpos-api/internal/config"
	domainRepo "github.com/maliksarmad/retailpos-api/internal/domain/repository"
	"github.com/maliksarmad/retailpos-api/internal/infrastructure/database"
	"github.com/maliksarmad/retailpos-api/internal/infrastructure/repository"
	"github.com/maliksarmad/retailpos-api/internal/infrastructure/salesapi"
	"github.com/maliksarmad/retailpos-api/internal/presentation/http/handler"
	"github.com/maliksarmad/retailpos-api/internal/presentation/http/routes"
	"github.com/maliksarmad/retailpos-api/internal/scheduler"
	"github.com/maliksarmad/retailpos-api/pkg/logger"
	"github.com/maliksarmad/retailpos-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := logger.Setup(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}); err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret)

	// Initialize the sales service client
	salesClient := salesapi.NewClient(cfg.Upstream)

	// Initialize repositories
	var sessionRepo domainRepo.SessionRepository
	if cfg.Session.Driver == "postgres" {
		sessionRepo = repository.NewSessionGormRepository(db, cfg.Session.TTL)
	} else {
		sessionRepo = repository.NewSessionMemoryRepository(cfg.Session.TTL)
	}
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	settingsService := service.NewSettingsService(salesClient, cfg.Tax)
	cartService := service.NewCartService(sessionRepo, settingsService)
	checkoutService := service.NewCheckoutService(sessionRepo, salesClient, settingsService, cartService)
	holdService := service.NewHoldService(sessionRepo, salesClient, settingsService, cartService)
	creditService := service.NewCreditService(salesClient)

	// Initialize handlers
	handlers := &routes.Handlers{
		Cart:     handler.NewCartHandler(cartService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Hold:     handler.NewHoldHandler(holdService),
		Credit:   handler.NewCreditHandler(creditService),
		Settings: handler.NewSettingsHandler(settingsService),
	}

	// Start the background scheduler
	sched := scheduler.New(creditService, cartService, idempotencyRepo, cfg.Reconcile)
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Set up routes and start the server
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	log.Printf("Starting %s on port %s", cfg.App.Name, cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
