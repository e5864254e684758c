package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"equaline/internal/middleware"
	"equaline/internal/repositories"
	"equaline/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*fiber.App, *services.AuthService) {
	t.Helper()
	store := repositories.NewBlobStore(repositories.NewMemoryStore())
	authService := services.NewAuthService(
		repositories.NewBlobUserRepository(store),
		repositories.NewBlobSessionRepository(store),
		"test_secret",
	)

	app := fiber.New()
	app.Get("/whoami", middleware.VisitorRequired(authService), func(c *fiber.Ctx) error {
		return c.SendString(middleware.VisitorID(c))
	})
	return app, authService
}

func get(t *testing.T, app *fiber.App, authHeader string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestVisitorRequired(t *testing.T) {
	app, authService := setup(t)

	token, visitorID, err := authService.IssueVisitorToken()
	require.NoError(t, err)

	status, body := get(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, visitorID, body)

	status, _ = get(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, status, "missing header")

	status, _ = get(t, app, "Token "+token)
	assert.Equal(t, http.StatusUnauthorized, status, "wrong scheme")

	status, _ = get(t, app, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestVisitorRequired_ForeignOrExpiredToken(t *testing.T) {
	app, _ := setup(t)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"visitor_id": "v1",
		"exp":        time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("other_secret"))
	require.NoError(t, err)
	status, _ := get(t, app, "Bearer "+foreign)
	assert.Equal(t, http.StatusUnauthorized, status)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"visitor_id": "v1",
		"exp":        time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("test_secret"))
	require.NoError(t, err)
	status, _ = get(t, app, "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, status)
}
