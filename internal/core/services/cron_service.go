package services

import (
	"context"
	"log"
	"time"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs the scheduled maintenance jobs:
//   - midnight: purge weather cache entries from previous days
//     (cache epochs are calendar days, so everything older is stale)
//   - 03:00: delete expired refresh tokens
type CronService struct {
	cron             *cron.Cron
	weatherSvc       *WeatherService
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewCronService creates a new cron service
func NewCronService(weatherSvc *WeatherService, refreshTokenRepo repositories.RefreshTokenRepository) *CronService {
	return &CronService{
		cron:             cron.New(),
		weatherSvc:       weatherSvc,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() {
	s.cron.AddFunc("0 0 * * *", s.purgeWeatherCache)
	s.cron.AddFunc("0 3 * * *", s.cleanupRefreshTokens)
	s.cron.Start()

	log.Println("✅ Cron service started (weather purge 00:00, token cleanup 03:00)")
}

// Stop stops the scheduler
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 Cron service stopped")
}

func (s *CronService) purgeWeatherCache() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.weatherSvc.PurgeStale(ctx); err != nil {
		log.Printf("❌ Weather cache purge failed: %v", err)
		return
	}
	log.Println("✅ Weather cache purged")
}

func (s *CronService) cleanupRefreshTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Refresh token cleanup failed: %v", err)
		return
	}
	log.Println("✅ Expired refresh tokens deleted")
}
