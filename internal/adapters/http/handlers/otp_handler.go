package handlers

import (
	"errors"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/domain"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/services"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// OTPHandler handles contact verification endpoints
type OTPHandler struct {
	otpService *services.OTPService
}

// NewOTPHandler creates a new OTP handler
func NewOTPHandler(otpService *services.OTPService) *OTPHandler {
	return &OTPHandler{
		otpService: otpService,
	}
}

// VerifyOTPRequest represents OTP verify request body
type VerifyOTPRequest struct {
	Code string `json:"code"`
}

func parsePurpose(raw string) (services.OTPPurpose, bool) {
	switch raw {
	case "email":
		return services.OTPPurposeEmail, true
	case "phone":
		return services.OTPPurposePhone, true
	default:
		return "", false
	}
}

// Send sends a verification code to the user's email or phone
// @Summary Send verification code
// @Description Send a one-time code to the contact field named by purpose
// @Tags OTP
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param purpose path string true "Purpose: email or phone"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /otp/{purpose}/send [post]
func (h *OTPHandler) Send(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	purpose, ok := parsePurpose(c.Params("purpose"))
	if !ok {
		return response.BadRequest(c, "Purpose must be email or phone")
	}

	if err := h.otpService.Send(c.Context(), userID, purpose); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrOTPThrottled):
			return response.TooManyRequests(c, "Please wait before requesting another code")
		default:
			return response.InternalServerError(c, "Failed to send verification code")
		}
	}

	return response.Success(c, "Verification code sent", nil)
}

// Verify checks a submitted verification code
// @Summary Verify code
// @Description Verify the one-time code and mark the contact field verified
// @Tags OTP
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param purpose path string true "Purpose: email or phone"
// @Param body body VerifyOTPRequest true "Submitted code"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /otp/{purpose}/verify [post]
func (h *OTPHandler) Verify(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	purpose, ok := parsePurpose(c.Params("purpose"))
	if !ok {
		return response.BadRequest(c, "Purpose must be email or phone")
	}

	var req VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Code == "" {
		return response.BadRequest(c, "Code is required")
	}

	if err := h.otpService.Verify(c.Context(), userID, purpose, req.Code); err != nil {
		switch {
		case errors.Is(err, domain.ErrOTPNotFound):
			return response.BadRequest(c, "No active code, request a new one")
		case errors.Is(err, domain.ErrOTPMaxAttempts):
			return response.TooManyRequests(c, "Too many wrong attempts, request a new code")
		case errors.Is(err, domain.ErrOTPInvalid):
			return response.BadRequest(c, "Incorrect verification code")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to verify code")
		}
	}

	return response.Success(c, "Verified successfully", nil)
}
