package services

import (
	"context"
	"log"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/models"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/repositories"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/domain"
)

// DashboardService aggregates the farmer dashboard payloads.
// Every section is best-effort: a failed piece degrades to defaults
// instead of failing the whole response.
type DashboardService struct {
	farmerRepo repositories.FarmerRepository
	weatherSvc *WeatherService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(farmerRepo repositories.FarmerRepository, weatherSvc *WeatherService) *DashboardService {
	return &DashboardService{
		farmerRepo: farmerRepo,
		weatherSvc: weatherSvc,
	}
}

// GeneralDashboard is the general info screen payload
type GeneralDashboard struct {
	Farmer   *models.FarmerResponse `json:"farmer"`
	Forecast []domain.ForecastDay   `json:"forecast,omitempty"`
	Partial  bool                   `json:"partial"`
}

// AnalyticsDashboard is the charts screen payload
type AnalyticsDashboard struct {
	Seasons  []string  `json:"seasons"`
	Yield    []float64 `json:"yield"`
	Income   []float64 `json:"income"`
	Rainfall []float64 `json:"rainfall"`
}

// Season-over-season factors used to derive chart series from the single
// stored figure when no historical rows exist yet
var seasonFactors = []float64{0.82, 0.91, 0.88, 0.97, 0.94, 1.0}

var seasonLabels = []string{"Kharif '23", "Rabi '23", "Kharif '24", "Rabi '24", "Kharif '25", "Rabi '25"}

// GetGeneral returns the profile summary with the latest forecast for the
// farmer's region. Weather failures leave Forecast empty and set Partial.
func (s *DashboardService) GetGeneral(ctx context.Context, userID uint) (*GeneralDashboard, error) {
	farmer, err := s.farmerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}

	dashboard := &GeneralDashboard{Farmer: farmer.ToResponse()}

	if farmer.Region != "" {
		forecast, err := s.weatherSvc.GetForecast(ctx, farmer.Region)
		if err != nil {
			log.Printf("⚠️ Dashboard weather degraded for user %d: %v", userID, err)
			dashboard.Partial = true
		} else {
			dashboard.Forecast = forecast
		}
	} else {
		dashboard.Partial = true
	}

	return dashboard, nil
}

// GetAnalytics returns chart series derived from the farmer profile
func (s *DashboardService) GetAnalytics(ctx context.Context, userID uint) (*AnalyticsDashboard, error) {
	farmer, err := s.farmerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}

	baseYield := orDefault(farmer.PastYield, defaultPastYield)
	baseIncome := orDefault(farmer.AnnualIncome, defaultAnnualIncome)
	baseRainfall := orDefault(farmer.PastRainfall, defaultPastRainfall)

	dashboard := &AnalyticsDashboard{
		Seasons:  seasonLabels,
		Yield:    make([]float64, len(seasonFactors)),
		Income:   make([]float64, len(seasonFactors)),
		Rainfall: make([]float64, len(seasonFactors)),
	}

	for i, factor := range seasonFactors {
		dashboard.Yield[i] = round2(baseYield * factor)
		dashboard.Income[i] = round2(baseIncome * factor)
		dashboard.Rainfall[i] = round2(baseRainfall * factor)
	}

	return dashboard, nil
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
