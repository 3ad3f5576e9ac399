package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/models"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/repositories"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/config"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/domain"

	"github.com/hashicorp/go-retryablehttp"
	"gorm.io/gorm"
)

// ============================================================
// Weather Service - city-keyed forecast with day-granularity cache
// ============================================================

// ForecastProvider fetches one raw forecast day from the upstream API
type ForecastProvider interface {
	FetchDay(ctx context.Context, city, date string) (tempF float64, condition string, err error)
}

// Geocoder resolves coordinates to a place
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (*Place, error)
}

// Place is a reverse-geocoding result
type Place struct {
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

// WeatherService serves 7-day forecasts. Results are cached per (city,
// calendar day): the cache invalidates when the wall-clock day changes,
// not after an elapsed duration, so 23:59 and 00:01 are different epochs.
type WeatherService struct {
	cacheRepo repositories.WeatherCacheRepository
	provider  ForecastProvider
	geocoder  Geocoder
	days      int
	now       func() time.Time
}

// NewWeatherService creates a new weather service
func NewWeatherService(cacheRepo repositories.WeatherCacheRepository, provider ForecastProvider, geocoder Geocoder, days int) *WeatherService {
	if days <= 0 {
		days = 7
	}
	return &WeatherService{
		cacheRepo: cacheRepo,
		provider:  provider,
		geocoder:  geocoder,
		days:      days,
		now:       time.Now,
	}
}

// GetForecast returns the forecast for a city, serving the same-day cache
// when present and refetching otherwise
func (s *WeatherService) GetForecast(ctx context.Context, city string) ([]domain.ForecastDay, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, domain.ErrCityRequired
	}

	today := s.now().Format("2006-01-02")

	// 1. Same city + same calendar day -> serve cache, zero upstream calls
	if entry, err := s.cacheRepo.Get(ctx, city, today); err == nil {
		var cached []domain.ForecastDay
		if err := json.Unmarshal([]byte(entry.Forecast), &cached); err == nil {
			return cached, nil
		}
		// Corrupt payload falls through to a refetch
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. One sequential upstream request per forecast date
	forecast := make([]domain.ForecastDay, 0, s.days)
	for i := 0; i < s.days; i++ {
		date := s.now().AddDate(0, 0, i).Format("2006-01-02")

		tempF, condition, err := s.provider.FetchDay(ctx, city, date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamWeather, err)
		}

		forecast = append(forecast, domain.ForecastDay{
			Date:      date,
			TempC:     FahrenheitToCelsius(tempF),
			Condition: ClassifyCondition(condition),
		})
	}

	// 3. Persist under today's epoch
	payload, err := json.Marshal(forecast)
	if err != nil {
		return nil, err
	}
	if err := s.cacheRepo.Put(ctx, &models.WeatherCacheEntry{
		City:     city,
		Day:      today,
		Forecast: string(payload),
	}); err != nil {
		log.Printf("⚠️ Failed to cache forecast for %s: %v", city, err)
	}

	return forecast, nil
}

// ReverseGeocode resolves coordinates to a place via the upstream geocoder
func (s *WeatherService) ReverseGeocode(ctx context.Context, lat, lon float64) (*Place, error) {
	return s.geocoder.ReverseGeocode(ctx, lat, lon)
}

// PurgeStale removes cache entries from previous days
func (s *WeatherService) PurgeStale(ctx context.Context) error {
	return s.cacheRepo.PurgeBefore(ctx, s.now().Format("2006-01-02"))
}

// FahrenheitToCelsius converts a temperature, rounded to one decimal
func FahrenheitToCelsius(f float64) float64 {
	c := (f - 32) * 5 / 9
	return math.Round(c*10) / 10
}

// ClassifyCondition maps a raw condition string to a display condition.
// Matching is case-insensitive substring with fixed precedence: rain
// beats cloud, cloud beats clear, anything unrecognized is partly-cloudy.
// "Partly Cloudy" therefore classifies as cloudy.
func ClassifyCondition(condition string) domain.WeatherCondition {
	c := strings.ToLower(condition)

	switch {
	case strings.Contains(c, "rain"):
		return domain.ConditionRainy
	case strings.Contains(c, "cloud"):
		return domain.ConditionCloudy
	case strings.Contains(c, "clear"), strings.Contains(c, "sun"):
		return domain.ConditionSunny
	default:
		return domain.ConditionPartlyCloudy
	}
}

// ============================================================
// Upstream clients
// ============================================================

// TimelineClient fetches single-day forecasts from a Visual Crossing
// style timeline API
type TimelineClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewTimelineClient creates a timeline API client with retries
func NewTimelineClient(cfg config.WeatherConfig) *TimelineClient {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.HTTPClient.Timeout = 10 * time.Second
	rc.Logger = nil

	return &TimelineClient{
		baseURL:    strings.TrimRight(cfg.TimelineBaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: rc.StandardClient(),
	}
}

type timelineResponse struct {
	Days []struct {
		Datetime   string  `json:"datetime"`
		Temp       float64 `json:"temp"`
		Conditions string  `json:"conditions"`
	} `json:"days"`
}

// FetchDay fetches the forecast for one city and date
func (c *TimelineClient) FetchDay(ctx context.Context, city, date string) (float64, string, error) {
	endpoint := fmt.Sprintf("%s/%s/%s?unitGroup=us&include=days&key=%s&contentType=json",
		c.baseURL, url.PathEscape(city), date, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result timelineResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, "", fmt.Errorf("decode response: %w", err)
	}
	if len(result.Days) == 0 {
		return 0, "", fmt.Errorf("no forecast data for %s on %s", city, date)
	}

	return result.Days[0].Temp, result.Days[0].Conditions, nil
}

// GeocodeClient resolves coordinates via a reverse-geocoding API
type GeocodeClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGeocodeClient creates a reverse-geocoding client with retries
func NewGeocodeClient(cfg config.WeatherConfig) *GeocodeClient {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.HTTPClient.Timeout = 10 * time.Second
	rc.Logger = nil

	return &GeocodeClient{
		baseURL:    strings.TrimRight(cfg.GeocodeBaseURL, "/"),
		httpClient: rc.StandardClient(),
	}
}

type geocodeResponse struct {
	City                 string `json:"city"`
	Locality             string `json:"locality"`
	PrincipalSubdivision string `json:"principalSubdivision"`
	CountryName          string `json:"countryName"`
}

// ReverseGeocode resolves coordinates to city/region/country
func (c *GeocodeClient) ReverseGeocode(ctx context.Context, lat, lon float64) (*Place, error) {
	endpoint := fmt.Sprintf("%s?latitude=%f&longitude=%f&localityLanguage=en", c.baseURL, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	city := result.City
	if city == "" {
		city = result.Locality
	}

	return &Place{
		City:    city,
		Region:  result.PrincipalSubdivision,
		Country: result.CountryName,
	}, nil
}
