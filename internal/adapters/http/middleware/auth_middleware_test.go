package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/config"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/pkg/jwt"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRevoker struct {
	revoked []string
}

func (f *fakeRevoker) Logout(_ context.Context, refreshToken string) error {
	f.revoked = append(f.revoked, refreshToken)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		Cookie: config.CookieConfig{SameSite: "Lax"},
	}
}

func newProtectedApp(cfg *config.Config, revoker TokenRevoker) *fiber.App {
	app := fiber.New()
	app.Get("/protected", AuthMiddleware(cfg, revoker), func(c *fiber.Ctx) error {
		return response.Success(c, "ok", fiber.Map{
			"userID": c.Locals("userID"),
			"role":   c.Locals("role"),
		})
	})
	return app
}

func expiredCookies(resp *http.Response) []string {
	var names []string
	for _, c := range resp.Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			names = append(names, c.Name)
		}
	}
	return names
}

func TestAuthMiddlewareAcceptsBearerToken(t *testing.T) {
	cfg := testConfig()
	app := newProtectedApp(cfg, &fakeRevoker{})

	token, err := jwt.GenerateAccessToken(1, "ramesh", "FARMER", cfg.JWT.Secret, 15)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareAcceptsCookieToken(t *testing.T) {
	cfg := testConfig()
	app := newProtectedApp(cfg, &fakeRevoker{})

	token, err := jwt.GenerateAccessToken(1, "ramesh", "FARMER", cfg.JWT.Secret, 15)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	app := newProtectedApp(testConfig(), &fakeRevoker{})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// No session was presented, so nothing gets cleared
	assert.Empty(t, resp.Cookies())
}

func TestAuthMiddlewareClearsSessionExactlyOnce(t *testing.T) {
	cfg := testConfig()
	revoker := &fakeRevoker{}
	app := newProtectedApp(cfg, revoker)

	// First request with a bad session: 401 plus full teardown
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "garbage"})
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "refresh-abc"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	cleared := expiredCookies(resp)
	assert.Contains(t, cleared, "access_token")
	assert.Contains(t, cleared, "refresh_token")
	assert.Equal(t, []string{"refresh-abc"}, revoker.revoked)

	// The browser dropped the cookies, so the retry carries none:
	// another 401, but no second teardown
	retry := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err = app.Test(retry)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, resp.Cookies())
	assert.Len(t, revoker.revoked, 1)
}

func TestAuthMiddlewareExpiredTokenMessage(t *testing.T) {
	cfg := testConfig()
	app := newProtectedApp(cfg, &fakeRevoker{})

	token, err := jwt.GenerateAccessToken(1, "ramesh", "FARMER", cfg.JWT.Secret, -1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoleMiddleware(t *testing.T) {
	cfg := testConfig()

	app := fiber.New()
	app.Get("/banks", AuthMiddleware(cfg, &fakeRevoker{}), BankOnly(), func(c *fiber.Ctx) error {
		return response.Success(c, "ok", nil)
	})

	farmerToken, err := jwt.GenerateAccessToken(1, "ramesh", "FARMER", cfg.JWT.Secret, 15)
	require.NoError(t, err)
	bankToken, err := jwt.GenerateAccessToken(2, "adb_bank", "BANK", cfg.JWT.Secret, 15)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/banks", nil)
	req.Header.Set("Authorization", "Bearer "+farmerToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/banks", nil)
	req.Header.Set("Authorization", "Bearer "+bankToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBearerPrefixRequired(t *testing.T) {
	cfg := testConfig()
	app := newProtectedApp(cfg, &fakeRevoker{})

	token, err := jwt.GenerateAccessToken(1, "ramesh", "FARMER", cfg.JWT.Secret, 15)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", strings.TrimSpace(token))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
