package handlers

import (
	"errors"
	"strconv"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/domain"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/services"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// WeatherHandler handles forecast and geocoding endpoints
type WeatherHandler struct {
	weatherService *services.WeatherService
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(weatherService *services.WeatherService) *WeatherHandler {
	return &WeatherHandler{
		weatherService: weatherService,
	}
}

// GetForecast returns the 7-day forecast for a city
// @Summary Get forecast
// @Description Get the 7-day forecast for a city, served from the same-day cache when present
// @Tags Weather
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param city query string true "City name"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /weather/forecast [get]
func (h *WeatherHandler) GetForecast(c *fiber.Ctx) error {
	city := c.Query("city")

	forecast, err := h.weatherService.GetForecast(c.Context(), city)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCityRequired):
			return response.BadRequest(c, "City is required")
		case errors.Is(err, domain.ErrUpstreamWeather):
			return response.ServiceUnavailable(c, "Weather service is unavailable")
		default:
			return response.InternalServerError(c, "Failed to get forecast")
		}
	}

	return response.Success(c, "Forecast retrieved successfully", fiber.Map{
		"city":     city,
		"forecast": forecast,
	})
}

// ReverseGeocode resolves coordinates to a place
// @Summary Reverse geocode
// @Description Resolve latitude/longitude to city, region and country
// @Tags Weather
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /weather/geocode [get]
func (h *WeatherHandler) ReverseGeocode(c *fiber.Ctx) error {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return response.BadRequest(c, "Invalid latitude")
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		return response.BadRequest(c, "Invalid longitude")
	}

	place, err := h.weatherService.ReverseGeocode(c.Context(), lat, lon)
	if err != nil {
		return response.ServiceUnavailable(c, "Geocoding service is unavailable")
	}

	return response.Success(c, "Location resolved successfully", place)
}
