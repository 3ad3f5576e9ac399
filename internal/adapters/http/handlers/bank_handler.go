package handlers

import (
	"context"
	"errors"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/domain"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/services"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/pkg/pagination"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BankHandler handles the bank review endpoints
type BankHandler struct {
	bankService  *services.BankService
	scoreService *services.ScoreService
}

// NewBankHandler creates a new bank handler
func NewBankHandler(bankService *services.BankService, scoreService *services.ScoreService) *BankHandler {
	return &BankHandler{
		bankService:  bankService,
		scoreService: scoreService,
	}
}

// Me returns the current user's bank
// @Summary Get current bank
// @Description Get the bank profile owned by the authenticated user
// @Tags Bank
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /banks/me [get]
func (h *BankHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	bank, err := h.bankService.GetBank(c.Context(), userID)
	if err != nil {
		return response.NotFound(c, "Bank not found")
	}

	return response.Success(c, "Bank retrieved successfully", bank)
}

// SearchFarmers lists farmers matching the search query
// @Summary Search farmers
// @Description Case-insensitive substring search over name, region and crops. Empty query lists all farmers.
// @Tags Bank
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search query"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /banks/farmers [get]
func (h *BankHandler) SearchFarmers(c *fiber.Ctx) error {
	query := c.Query("q")
	params := pagination.GetParams(c)

	farmers, total, err := h.bankService.SearchFarmers(c.Context(), query, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to search farmers")
	}

	return response.Success(c, "Farmers retrieved successfully", fiber.Map{
		"query":   query,
		"farmers": farmers,
		"meta":    pagination.GetMeta(params, total),
	})
}

// ListLoans lists the bank's loan records
// @Summary List loan records
// @Description List the bank's loan records, filtered by a search query over farmer name, region and purpose
// @Tags Bank
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search query"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /banks/loans [get]
func (h *BankHandler) ListLoans(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	loans, err := h.bankService.ListLoans(c.Context(), userID, c.Query("q"))
	if err != nil {
		if errors.Is(err, domain.ErrBankNotFound) {
			return response.NotFound(c, "Bank not found")
		}
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", fiber.Map{
		"loans": loans,
		"count": len(loans),
	})
}

// ApproveLoan approves a loan for a farmer
// @Summary Approve loan
// @Description Create an approved loan record with a snapshot of the farmer at approval time
// @Tags Bank
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ApproveLoanInput true "Loan data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /banks/loans [post]
func (h *BankHandler) ApproveLoan(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.ApproveLoanInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.FarmerID == 0 {
		return response.BadRequest(c, "Farmer ID is required")
	}
	if input.Amount <= 0 {
		return response.BadRequest(c, "Amount must be positive")
	}

	loan, err := h.bankService.ApproveLoan(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBankNotFound):
			return response.NotFound(c, "Bank not found")
		case errors.Is(err, domain.ErrProfileNotFound):
			return response.NotFound(c, "Farmer not found")
		default:
			return response.InternalServerError(c, "Failed to approve loan")
		}
	}

	return response.Created(c, "Loan approved successfully", loan)
}

// RevealScore returns a farmer's stored score after the reveal delay
// @Summary Reveal farmer credit score
// @Description Return the farmer's stored score after the review screen's calculation delay
// @Tags Bank
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param farmerID path int true "Farmer ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /banks/loans/{farmerID}/reveal [post]
func (h *BankHandler) RevealScore(c *fiber.Ctx) error {
	farmerID, err := c.ParamsInt("farmerID")
	if err != nil || farmerID <= 0 {
		return response.BadRequest(c, "Invalid farmer ID")
	}

	farmer, err := h.scoreService.Reveal(c.Context(), uint(farmerID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProfileNotFound):
			return response.NotFound(c, "Farmer not found")
		case errors.Is(err, domain.ErrScoreNotReady):
			return response.NotFound(c, "Credit score not calculated yet")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil // client went away mid-reveal
		default:
			return response.InternalServerError(c, "Failed to reveal credit score")
		}
	}

	return response.Success(c, "Credit score revealed", farmer)
}
