package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/tillbook/tillbook-api/internal/application/service"
	"github.com/tillbook/tillbook-api/internal/config"
	"github.com/tillbook/tillbook-api/internal/infrastructure/database"
	"github.com/tillbook/tillbook-api/internal/infrastructure/repository"
	"github.com/tillbook/tillbook-api/internal/presentation/http/handler"
	"github.com/tillbook/tillbook-api/internal/presentation/http/routes"
	"github.com/tillbook/tillbook-api/pkg/printer"
	"github.com/tillbook/tillbook-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	menuRepo := repository.NewMenuItemRepository(db)
	kotRepo := repository.NewKOTRepository(db)
	billRepo := repository.NewBillRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	settlementRepo := repository.NewSettlementRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	uow := repository.NewUnitOfWork(db)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.Device,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo)
	customerService := service.NewCustomerService(customerRepo, settlementRepo, uow)
	menuService := service.NewMenuService(menuRepo)
	billingService := service.NewBillingService(kotRepo, billRepo, menuRepo, customerRepo, settingsRepo, uow)
	expenseService := service.NewExpenseService(expenseRepo, settlementRepo, uow)
	auditService := service.NewAuditService(customerRepo, settlementRepo, uow)
	reportService := service.NewReportService(settlementRepo, customerRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	printerService := service.NewPrinterService(thermalPrinter, billRepo, kotRepo, menuRepo, settingsRepo, cfg.Printer.Width)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		User:     handler.NewUserHandler(userService),
		Customer: handler.NewCustomerHandler(customerService),
		Menu:     handler.NewMenuHandler(menuService),
		KOT:      handler.NewKOTHandler(billingService, printerService),
		Bill:     handler.NewBillHandler(billingService, printerService),
		Expense:  handler.NewExpenseHandler(expenseService),
		Audit:    handler.NewAuditHandler(auditService),
		Report:   handler.NewReportHandler(reportService),
		Settings: handler.NewSettingsHandler(settingsService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
