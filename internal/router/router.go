package router

import (
	"time"

	"foodcart360/internal/config"
	"foodcart360/internal/handler"
	"foodcart360/internal/infra"
	"foodcart360/internal/middleware"
	"foodcart360/internal/repository"
	"foodcart360/internal/service"
	"foodcart360/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, driveCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	driveClient := infra.NewDriveClient(cfg.DriveBaseURL, cfg.DriveFolder)
	billingClient := infra.NewBillingClient(cfg.BillingBaseURL, cfg.BillingAPIKey)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	settingsRepo := repository.NewSettingsRepository(db, cfg.TaxRate())
	backupRepo := repository.NewBackupRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	menuSvc := service.NewMenuService(menuRepo, rdb)
	orderSvc := service.NewOrderService(orderRepo, menuRepo, settingsRepo)
	expenseSvc := service.NewExpenseService(expenseRepo)
	inventorySvc := service.NewInventoryService(inventoryRepo)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, userRepo)
	settingsSvc := service.NewSettingsService(settingsRepo)
	analyticsSvc := service.NewAnalyticsService(orderRepo, expenseRepo, inventoryRepo)
	subscriptionSvc := service.NewSubscriptionService(settingsRepo, billingClient, cfg.TrialDays)
	backupSvc := service.NewBackupService(backupRepo, orderRepo, menuRepo, inventoryRepo, expenseRepo, settingsRepo, dispatcher, cfg.BackupDir)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	menuH := handler.NewMenuHandler(menuSvc)
	ordersH := handler.NewOrdersHandler(orderSvc, cfg.PDFStoragePath)
	expensesH := handler.NewExpensesHandler(expenseSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	attendanceH := handler.NewAttendanceHandler(attendanceSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	analyticsH := handler.NewAnalyticsHandler(analyticsSvc, settingsSvc, dispatcher, cfg.PDFStoragePath, cfg.ReportEmail)
	subscriptionH := handler.NewSubscriptionHandler(subscriptionSvc)
	backupH := handler.NewBackupHandler(backupSvc, driveClient, driveCB)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, driveCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	premiumMW := middleware.PremiumGate(subscriptionSvc)
	anyStaff := middleware.RequireRole("staff", "manager", "owner")
	managerUp := middleware.RequireRole("manager", "owner")
	ownerOnly := middleware.RequireRole("owner")

	v1 := r.Group("/v1", jwtMW)
	{
		// Orders — the POS flow, open to all roles
		v1.POST("/orders", anyStaff, ordersH.Checkout)
		v1.GET("/orders", anyStaff, ordersH.List)
		v1.GET("/orders/:id", anyStaff, ordersH.GetByID)
		v1.GET("/orders/:id/receipt", anyStaff, ordersH.Receipt)
		v1.PATCH("/orders/:id/status", anyStaff, ordersH.UpdateStatus)
		v1.DELETE("/orders/:id", managerUp, ordersH.Delete)

		// Menu — staff read, manager+ write
		v1.GET("/menu", anyStaff, menuH.List)
		v1.GET("/menu/:id", anyStaff, menuH.GetByID)
		menu := v1.Group("/menu", managerUp)
		{
			menu.POST("", menuH.Create)
			menu.PUT("/:id", menuH.Update)
			menu.DELETE("/:id", menuH.Delete)
			menu.PATCH("/:id/reactivate", menuH.Reactivate)
		}

		// Inventory — staff adjust, manager+ manage
		v1.GET("/inventory", anyStaff, inventoryH.List)
		v1.GET("/inventory/alerts", anyStaff, inventoryH.LowStockAlerts)
		v1.POST("/inventory/:id/adjust", anyStaff, inventoryH.AdjustStock)
		inv := v1.Group("/inventory", managerUp)
		{
			inv.POST("", inventoryH.Create)
			inv.PUT("/:id", inventoryH.Update)
			inv.DELETE("/:id", inventoryH.Delete)
		}

		// Expenses — premium-gated, manager+
		expenses := v1.Group("/expenses", managerUp, premiumMW)
		{
			expenses.POST("", expensesH.Create)
			expenses.GET("", expensesH.List)
			expenses.DELETE("/:id", expensesH.Delete)
		}

		// Reports — premium-gated, manager+
		reports := v1.Group("/reports", managerUp, premiumMW)
		{
			reports.GET("/daily", analyticsH.DailySummary)
			reports.GET("/range", analyticsH.RangeSummary)
			reports.POST("/daily/email", analyticsH.EmailDailyReport)
		}

		// Attendance
		v1.POST("/attendance/checkin", anyStaff, attendanceH.CheckIn)
		v1.POST("/attendance/checkout", anyStaff, attendanceH.CheckOut)
		v1.GET("/attendance", managerUp, attendanceH.ListByDate)

		// Backup — owner only, premium-gated
		backup := v1.Group("/backup", ownerOnly, premiumMW)
		{
			backup.POST("/export", backupH.Export)
			backup.POST("/import", backupH.Import)
			backup.GET("", backupH.ListRecords)
			backup.GET("/drive", backupH.ListDriveBackups)
			backup.POST("/drive/:remote_id/restore", backupH.RestoreFromDrive)
		}

		// Subscription — status readable by all, changes owner only
		v1.GET("/subscription/status", anyStaff, subscriptionH.Status)
		v1.GET("/subscription/plans", anyStaff, subscriptionH.Plans)
		v1.POST("/subscription/trial", ownerOnly, subscriptionH.StartTrial)
		v1.POST("/subscription/activate", ownerOnly, subscriptionH.Activate)

		// Settings & profile — reads stay open so the POS can render
		// currency and receipt identity; edits are a premium screen
		v1.GET("/settings", anyStaff, settingsH.GetSettings)
		v1.PUT("/settings", ownerOnly, premiumMW, settingsH.UpdateSettings)
		v1.GET("/settings/profile", anyStaff, settingsH.GetProfile)
		v1.PUT("/settings/profile", ownerOnly, premiumMW, settingsH.UpdateProfile)

		// Users — owner only
		users := v1.Group("/users", ownerOnly)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
