package routes

import (
	"clinicamia-assets/internal/adapters/http/handlers"
	"clinicamia-assets/internal/adapters/http/middleware"
	"clinicamia-assets/internal/adapters/persistence/repositories"
	"clinicamia-assets/internal/config"
	"clinicamia-assets/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, scheduler *services.SchedulerService) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	assetRepo := repositories.NewAssetRepository(db)
	depRepo := repositories.NewDepreciationRepository(db)
	maintRepo := repositories.NewMaintenanceRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg)
	assetService := services.NewAssetService(assetRepo)
	depService := services.NewDepreciationService(assetRepo, depRepo, cfg.Scheduler.RunTimeout())
	maintService := services.NewMaintenanceService(assetRepo, maintRepo)
	exportService := services.NewAccountingExportService(depRepo, cfg.Accounts)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	assetHandler := handlers.NewAssetHandler(assetService)
	depHandler := handlers.NewDepreciationHandler(scheduler, depService, exportService)
	maintHandler := handlers.NewMaintenanceHandler(maintService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, assetHandler, depHandler,
		maintHandler, dashboardHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	assetHandler *handlers.AssetHandler,
	depHandler *handlers.DepreciationHandler,
	maintHandler *handlers.MaintenanceHandler,
	dashboardHandler *handlers.DashboardHandler,
	cfg *config.Config,
) {
	// API Info
	router.Get("/", healthHandler.APIInfo)

	// Auth routes (public, stricter rate limit)
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)

	// Asset routes (Authenticated users)
	assetRoutes := router.Group("/assets")
	assetRoutes.Use(middleware.AuthMiddleware(cfg))
	setupAssetRoutes(assetRoutes, assetHandler, maintHandler)

	// Depreciation routes (Authenticated; run and posting are Admin only)
	depRoutes := router.Group("/depreciation")
	depRoutes.Use(middleware.AuthMiddleware(cfg))
	setupDepreciationRoutes(depRoutes, depHandler)

	// Maintenance alert routes (Authenticated users)
	maintRoutes := router.Group("/maintenances")
	maintRoutes.Use(middleware.AuthMiddleware(cfg))
	maintRoutes.Get("/due-soon", maintHandler.DueSoon)
	maintRoutes.Get("/overdue", maintHandler.Overdue)

	// Dashboard routes (Authenticated users)
	dashboardRoutes := router.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Get("/", dashboardHandler.Get)
}

// setupAssetRoutes configures asset registry routes
func setupAssetRoutes(router fiber.Router, handler *handlers.AssetHandler, maintHandler *handlers.MaintenanceHandler) {
	router.Get("/types", handler.Types)
	router.Get("/", handler.List)
	router.Post("/", handler.Register)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)

	// Decommission is Admin only
	router.Delete("/:id", middleware.RoleMiddleware("ADMIN"), handler.Decommission)

	// Maintenance history lives under the asset
	router.Get("/:id/maintenances", maintHandler.ListByAsset)
	router.Post("/:id/maintenances", maintHandler.Register)
}

// setupDepreciationRoutes configures depreciation run and export routes
func setupDepreciationRoutes(router fiber.Router, handler *handlers.DepreciationHandler) {
	router.Get("/status", handler.Status)
	router.Get("/periods/:period", handler.PeriodSummary)
	router.Get("/periods/:period/unposted", handler.UnpostedSummary)

	// Admin only: trigger a run and confirm ledger posting
	router.Post("/run", middleware.RoleMiddleware("ADMIN"), handler.Run)
	router.Post("/periods/:period/posted", middleware.RoleMiddleware("ADMIN"), handler.MarkPosted)
}
