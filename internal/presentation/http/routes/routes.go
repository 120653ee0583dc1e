package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tillbook/tillbook-api/internal/config"
	"github.com/tillbook/tillbook-api/internal/domain/entity"
	domainRepo "github.com/tillbook/tillbook-api/internal/domain/repository"
	"github.com/tillbook/tillbook-api/internal/presentation/http/handler"
	"github.com/tillbook/tillbook-api/internal/presentation/http/middleware"
	"github.com/tillbook/tillbook-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Customer *handler.CustomerHandler
	Menu     *handler.MenuHandler
	KOT      *handler.KOTHandler
	Bill     *handler.BillHandler
	Expense  *handler.ExpenseHandler
	Audit    *handler.AuditHandler
	Report   *handler.ReportHandler
	Settings *handler.SettingsHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idem := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}

	// Profile
	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/auth/password", h.Auth.ChangePassword)

	// Staff accounts (admin only)
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}

	// Customers
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
		customers.GET("/:id/statement", h.Customer.Statement)
		customers.GET("/:id/credit", h.Customer.CreditLedger)
		customers.GET("/:id/advance", h.Customer.AdvanceLedger)
		customers.POST("/:id/credit/clear", middleware.Idempotency(idem), h.Customer.ClearCredit)
		customers.POST("/:id/advance/deposit", middleware.Idempotency(idem), h.Customer.DepositAdvance)
	}

	// Menu
	menu := protected.Group("/menu-items")
	{
		menu.GET("", h.Menu.List)
		menu.POST("", h.Menu.Create)
		menu.GET("/categories", h.Menu.Categories)
		menu.GET("/:id", h.Menu.Get)
		menu.PUT("/:id", h.Menu.Update)
		menu.DELETE("/:id", h.Menu.Delete)
	}

	// Kitchen order tickets
	kots := protected.Group("/kots")
	{
		kots.GET("", h.KOT.List)
		kots.POST("", h.KOT.Create)
		kots.GET("/unbilled", h.KOT.ListUnbilled)
		kots.GET("/:id", h.KOT.Get)
		kots.PUT("/:id/status", h.KOT.UpdateStatus)
		kots.POST("/:id/print", h.KOT.Print)
	}

	// Bills. Settlement writes money and must carry an idempotency key so
	// a retried request can never settle twice.
	bills := protected.Group("/bills")
	{
		bills.GET("", h.Bill.List)
		bills.POST("", h.Bill.Create)
		bills.GET("/:id", h.Bill.Get)
		bills.POST("/:id/settle", middleware.IdempotencyRequired(idem), h.Bill.Settle)
		bills.POST("/:id/cancel", h.Bill.Cancel)
		bills.POST("/:id/print", h.Bill.Print)
	}

	// Expenses
	expenses := protected.Group("/expenses")
	{
		expenses.GET("", h.Expense.List)
		expenses.POST("", middleware.Idempotency(idem), h.Expense.Create)
		expenses.GET("/categories", h.Expense.Categories)
		expenses.GET("/:id", h.Expense.Get)
		expenses.POST("/:id/credit/clear", middleware.Idempotency(idem), h.Expense.ClearCredit)
	}

	// Ledger audit (admin only)
	audit := protected.Group("/audit")
	audit.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		audit.GET("/consistency", h.Audit.Consistency)
		audit.POST("/reconcile", h.Audit.Reconcile)
		audit.POST("/migrate-modes", h.Audit.MigrateModes)
	}

	// Reports
	reports := protected.Group("/reports")
	{
		reports.GET("/summary", h.Report.Summary)
		reports.GET("/dues", h.Report.Dues)
	}

	// Settings (admin only for updates)
	protected.GET("/settings", h.Settings.Get)
	protected.PUT("/settings", middleware.RequireRole(entity.RoleAdmin), h.Settings.Update)

	// Printer
	protected.GET("/printer/status", h.Printer.Status)
	protected.POST("/printer/test", h.Printer.TestPrint)
}
