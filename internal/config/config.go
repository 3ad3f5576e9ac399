package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	OTP      OTPConfig
	Twilio   TwilioConfig
	SMTP     SMTPConfig
	Weather  WeatherConfig
	Scoring  ScoringConfig
	Chat     ChatConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// RedisConfig holds redis configuration (OTP storage)
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// OTPConfig holds OTP configuration
type OTPConfig struct {
	Length        int
	TTLMinutes    int
	MaxAttempts   int
	ResendSeconds int
}

// TwilioConfig holds Twilio SMS configuration
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// SMTPConfig holds SMTP configuration for email OTP and alerts
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// WeatherConfig holds weather and geocoding provider configuration
type WeatherConfig struct {
	TimelineBaseURL string
	APIKey          string
	GeocodeBaseURL  string
	ForecastDays    int
}

// ScoringConfig holds the external credit score predictor configuration
type ScoringConfig struct {
	PredictURL    string
	RevealDelayMs int
}

// ChatConfig holds the chat assistant LLM configuration
type ChatConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev")
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	// Build config based on APP_MODE
	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(appMode),
		Redis:    loadRedisConfig(appMode),
		JWT:      loadJWTConfig(appMode),
		Cookie:   loadCookieConfig(appMode),
		OTP:      loadOTPConfig(),
		Twilio:   loadTwilioConfig(),
		SMTP:     loadSMTPConfig(),
		Weather:  loadWeatherConfig(),
		Scoring:  loadScoringConfig(),
		Chat:     loadChatConfig(),
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "farmcredit"),
	}
}

// loadRedisConfig loads redis config based on mode
func loadRedisConfig(mode string) RedisConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	db, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return RedisConfig{
		Addr:     getEnv(prefix+"REDIS_ADDR", "localhost:6379"),
		Password: getEnv(prefix+"REDIS_PASS", ""),
		DB:       db,
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "15"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "7"))

	return JWTConfig{
		Secret:           getEnv(prefix+"JWT_SECRET", "default_secret"),
		RefreshSecret:    getEnv(prefix+"JWT_REFRESH_SECRET", "default_refresh_secret"),
		AccessTokenMins:  accessMins,
		RefreshTokenDays: refreshDays,
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadOTPConfig loads OTP config
func loadOTPConfig() OTPConfig {
	length, _ := strconv.Atoi(getEnv("OTP_LENGTH", "6"))
	ttl, _ := strconv.Atoi(getEnv("OTP_TTL_MINUTES", "10"))
	attempts, _ := strconv.Atoi(getEnv("OTP_MAX_ATTEMPTS", "5"))
	resend, _ := strconv.Atoi(getEnv("OTP_RESEND_SECONDS", "60"))

	return OTPConfig{
		Length:        length,
		TTLMinutes:    ttl,
		MaxAttempts:   attempts,
		ResendSeconds: resend,
	}
}

// loadTwilioConfig loads Twilio config
func loadTwilioConfig() TwilioConfig {
	return TwilioConfig{
		AccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		AuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		FromNumber: getEnv("TWILIO_FROM_NUMBER", ""),
	}
}

// loadSMTPConfig loads SMTP config
func loadSMTPConfig() SMTPConfig {
	return SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     getEnv("SMTP_PORT", "587"),
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", ""),
	}
}

// loadWeatherConfig loads weather provider config
// API key comes from the environment, never from source
func loadWeatherConfig() WeatherConfig {
	days, _ := strconv.Atoi(getEnv("WEATHER_FORECAST_DAYS", "7"))

	return WeatherConfig{
		TimelineBaseURL: getEnv("WEATHER_TIMELINE_URL", "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline"),
		APIKey:          getEnv("WEATHER_API_KEY", ""),
		GeocodeBaseURL:  getEnv("GEOCODE_URL", "https://api.bigdatacloud.net/data/reverse-geocode-client"),
		ForecastDays:    days,
	}
}

// loadScoringConfig loads credit score predictor config
func loadScoringConfig() ScoringConfig {
	delay, _ := strconv.Atoi(getEnv("SCORE_REVEAL_DELAY_MS", "1500"))

	return ScoringConfig{
		PredictURL:    getEnv("SCORE_PREDICT_URL", ""),
		RevealDelayMs: delay,
	}
}

// loadChatConfig loads chat assistant config
func loadChatConfig() ChatConfig {
	maxTokens, _ := strconv.Atoi(getEnv("CHAT_MAX_TOKENS", "800"))

	return ChatConfig{
		BaseURL:   getEnv("CHAT_API_URL", "https://api.groq.com/openai/v1/chat/completions"),
		APIKey:    getEnv("CHAT_API_KEY", ""),
		Model:     getEnv("CHAT_MODEL", "llama3-8b-8192"),
		MaxTokens: maxTokens,
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		// Default production origins
		return "https://farmcredit.example.com"
	}
	return origins
}
