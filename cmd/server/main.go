package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"clinicamia-assets/internal/adapters/http/middleware"
	"clinicamia-assets/internal/adapters/http/routes"
	"clinicamia-assets/internal/adapters/persistence/models"
	"clinicamia-assets/internal/adapters/persistence/repositories"
	"clinicamia-assets/internal/config"
	"clinicamia-assets/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "clinicamia-assets/docs" // Swagger docs
)

// @title ClinicaMia Assets API
// @version 1.0
// @description Fixed-asset lifecycle and depreciation API for the ClinicaMia clinic management platform
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email soporte@clinicamia.com

// @host api.clinicamia.com
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed initial admin user
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed database: %v", err)
	}

	// Depreciation scheduler (monthly, day 1 at 02:00 local time)
	assetRepo := repositories.NewAssetRepository(db)
	depRepo := repositories.NewDepreciationRepository(db)
	depService := services.NewDepreciationService(assetRepo, depRepo, cfg.Scheduler.RunTimeout())

	scheduler, err := services.NewSchedulerService(depService, cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatalf("❌ Failed to create depreciation scheduler: %v", err)
	}
	if cfg.Scheduler.Enabled {
		if err := scheduler.Start(); err != nil {
			log.Fatalf("❌ Failed to start depreciation scheduler: %v", err)
		}
		defer scheduler.Stop()
	} else {
		log.Println("ℹ️ Depreciation scheduler disabled, only manual runs available")
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ClinicaMia Assets API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg, scheduler)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
