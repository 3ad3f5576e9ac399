package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/http/middleware"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/http/routes"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/models"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/repositories"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/config"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "github.com/YashKambaria/Farmer-Helping-Team/docs" // Swagger docs
)

// @title FarmCredit API
// @version 1.0
// @description Credit assessment platform connecting farmers and banks
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@farmcredit.example.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.farmcredit.example.com
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

	// Connect to Redis (OTP storage)
	if _, err := config.ConnectRedis(cfg); err != nil {
		log.Fatalf("❌ Failed to connect to Redis: %v", err)
	}
	defer config.CloseRedis()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed demo accounts (dev mode only)
	if cfg.IsDev() {
		if err := config.NewSeeder(db).Run(); err != nil {
			log.Printf("⚠️ Warning: Failed to seed demo data: %v", err)
		}
	}

	// Scheduled maintenance: weather cache purge at midnight, token cleanup at 03:00
	weatherCacheRepo := repositories.NewWeatherCacheRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	weatherService := services.NewWeatherService(
		weatherCacheRepo,
		services.NewTimelineClient(cfg.Weather),
		services.NewGeocodeClient(cfg.Weather),
		cfg.Weather.ForecastDays,
	)
	cronService := services.NewCronService(weatherService, refreshTokenRepo)
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "FarmCredit API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

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
