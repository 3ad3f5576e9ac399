package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/config"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/pkg/jwt"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TokenRevoker revokes a refresh token when a session is torn down
type TokenRevoker interface {
	Logout(ctx context.Context, refreshToken string) error
}

// AuthMiddleware creates authentication middleware.
// A 401 tears the session down exactly once: the presented refresh token
// is revoked and both auth cookies are expired in the same response.
// A repeat request carries no session cookies, so nothing clears twice.
func AuthMiddleware(cfg *config.Config, revoker TokenRevoker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			clearSession(c, cfg, revoker)
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			clearSession(c, cfg, revoker)
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Set user info in context
		c.Locals("userID", claims.UserID)
		c.Locals("username", claims.Username)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// clearSession revokes the presented refresh token and expires the auth
// cookies. It is a no-op when the request carries no session cookies.
func clearSession(c *fiber.Ctx, cfg *config.Config, revoker TokenRevoker) {
	refreshToken := c.Cookies("refresh_token")
	hadSession := refreshToken != "" || c.Cookies("access_token") != ""
	if !hadSession {
		return
	}

	if refreshToken != "" && revoker != nil {
		_ = revoker.Logout(c.Context(), refreshToken)
	}

	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Now().Add(-1 * time.Hour),
			Secure:   cfg.Cookie.Secure,
			HTTPOnly: true,
			SameSite: cfg.Cookie.SameSite,
			Domain:   cfg.Cookie.Domain,
		})
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		// Check if user's role is in allowed roles
		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// FarmerOnly middleware allows only FARMER role
func FarmerOnly() fiber.Handler {
	return RoleMiddleware("FARMER")
}

// BankOnly middleware allows only BANK role
func BankOnly() fiber.Handler {
	return RoleMiddleware("BANK")
}
