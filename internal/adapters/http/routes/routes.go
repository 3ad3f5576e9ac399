package routes

import (
	"time"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/http/handlers"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/http/middleware"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/repositories"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/config"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	farmerRepo := repositories.NewFarmerRepository(db)
	bankRepo := repositories.NewBankRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	chatRepo := repositories.NewChatRepository(db)
	weatherCacheRepo := repositories.NewWeatherCacheRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, farmerRepo, bankRepo, cfg)
	profileService := services.NewProfileService(userRepo, farmerRepo, bankRepo)
	notifyService := services.NewNotificationService(cfg)
	otpService := services.NewOTPService(config.Redis, userRepo, notifyService, cfg.OTP)
	weatherService := services.NewWeatherService(
		weatherCacheRepo,
		services.NewTimelineClient(cfg.Weather),
		services.NewGeocodeClient(cfg.Weather),
		cfg.Weather.ForecastDays,
	)
	scoreService := services.NewScoreService(farmerRepo, services.NewPredictClient(cfg.Scoring), cfg.Scoring)
	chatService := services.NewChatService(chatRepo, services.NewLLMClient(cfg.Chat))
	bankService := services.NewBankService(bankRepo, farmerRepo, loanRepo, userRepo, notifyService)
	dashboardService := services.NewDashboardService(farmerRepo, weatherService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	profileHandler := handlers.NewProfileHandler(profileService)
	otpHandler := handlers.NewOTPHandler(otpService)
	weatherHandler := handlers.NewWeatherHandler(weatherService)
	scoreHandler := handlers.NewScoreHandler(scoreService)
	bankHandler := handlers.NewBankHandler(bankService, scoreService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	chatHandler := handlers.NewChatHandler(chatService)

	auth := middleware.AuthMiddleware(cfg, authService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/health/db", healthHandler.DatabaseHealth)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public, rate limited)
	authRoutes := apiV1.Group("/auth", middleware.NoCacheHeaders())
	authRoutes.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshToken)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/me", auth, authHandler.Me)
	authRoutes.Post("/logout-all", auth, authHandler.LogoutAll)

	// Profile routes (authenticated)
	profileRoutes := apiV1.Group("/profile", auth)
	profileRoutes.Get("/", profileHandler.GetProfile)
	profileRoutes.Put("/", profileHandler.UpdateProfile)
	profileRoutes.Put("/password", profileHandler.ChangePassword)

	// OTP routes (authenticated, strictly rate limited against code spam)
	otpRoutes := apiV1.Group("/otp", auth, middleware.NoCacheHeaders())
	otpRoutes.Post("/:purpose/send", middleware.StrictRateLimiter(), otpHandler.Send)
	otpRoutes.Post("/:purpose/verify", middleware.StrictRateLimiter(), otpHandler.Verify)

	// Weather routes (authenticated, privately cacheable)
	weatherRoutes := apiV1.Group("/weather", auth, middleware.PrivateCacheHeaders(10*time.Minute))
	weatherRoutes.Get("/forecast", weatherHandler.GetForecast)
	weatherRoutes.Get("/geocode", weatherHandler.ReverseGeocode)

	// Score routes (farmer only)
	scoreRoutes := apiV1.Group("/score", auth, middleware.FarmerOnly())
	scoreRoutes.Get("/", scoreHandler.GetScore)
	scoreRoutes.Post("/calculate", scoreHandler.Calculate)

	// Bank review routes (bank only)
	bankRoutes := apiV1.Group("/banks", auth, middleware.BankOnly())
	bankRoutes.Get("/me", bankHandler.Me)
	bankRoutes.Get("/farmers", bankHandler.SearchFarmers)
	bankRoutes.Get("/loans", bankHandler.ListLoans)
	bankRoutes.Post("/loans", bankHandler.ApproveLoan)
	bankRoutes.Post("/loans/:farmerID/reveal", bankHandler.RevealScore)

	// Dashboard routes (farmer only)
	dashboardRoutes := apiV1.Group("/dashboard", auth, middleware.FarmerOnly())
	dashboardRoutes.Get("/general", dashboardHandler.GetGeneral)
	dashboardRoutes.Get("/analytics", dashboardHandler.GetAnalytics)

	// Chat routes (authenticated)
	chatRoutes := apiV1.Group("/chat", auth)
	chatRoutes.Get("/messages", chatHandler.History)
	chatRoutes.Post("/messages", chatHandler.SendMessage)
	chatRoutes.Get("/stream/:messageID", chatHandler.Stream)
}
