package handlers

import (
	"errors"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/domain"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/services"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ScoreHandler handles credit score endpoints
type ScoreHandler struct {
	scoreService *services.ScoreService
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scoreService *services.ScoreService) *ScoreHandler {
	return &ScoreHandler{
		scoreService: scoreService,
	}
}

// Calculate recomputes the current farmer's credit score
// @Summary Calculate credit score
// @Description Build the feature payload from the farmer profile and call the prediction model
// @Tags Score
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /score/calculate [post]
func (h *ScoreHandler) Calculate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	farmer, err := h.scoreService.Calculate(c.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProfileNotFound):
			return response.NotFound(c, "Farmer profile not found")
		case errors.Is(err, domain.ErrScoreUnavailable):
			return response.ServiceUnavailable(c, "Credit scoring service is unavailable")
		default:
			return response.InternalServerError(c, "Failed to calculate credit score")
		}
	}

	return response.Success(c, "Credit score calculated successfully", farmer)
}

// GetScore returns the current farmer's stored credit score
// @Summary Get credit score
// @Description Get the last stored credit score for the current farmer
// @Tags Score
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /score [get]
func (h *ScoreHandler) GetScore(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	farmer, err := h.scoreService.GetScore(c.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProfileNotFound):
			return response.NotFound(c, "Farmer profile not found")
		case errors.Is(err, domain.ErrScoreNotReady):
			return response.NotFound(c, "Credit score not calculated yet")
		default:
			return response.InternalServerError(c, "Failed to get credit score")
		}
	}

	return response.Success(c, "Credit score retrieved successfully", farmer)
}
