package handlers

import (
	"errors"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/domain"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/services"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles farmer dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetGeneral returns the general info dashboard
// @Summary General dashboard
// @Description Get the farmer's profile summary with the forecast for their region. A weather failure degrades to a partial payload.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /dashboard/general [get]
func (h *DashboardHandler) GetGeneral(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.dashboardService.GetGeneral(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return response.NotFound(c, "Farmer profile not found")
		}
		return response.InternalServerError(c, "Failed to get dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}

// GetAnalytics returns the analytics dashboard
// @Summary Analytics dashboard
// @Description Get chart series for yield, income and rainfall per season
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /dashboard/analytics [get]
func (h *DashboardHandler) GetAnalytics(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.dashboardService.GetAnalytics(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return response.NotFound(c, "Farmer profile not found")
		}
		return response.InternalServerError(c, "Failed to get analytics")
	}

	return response.Success(c, "Analytics retrieved successfully", data)
}
