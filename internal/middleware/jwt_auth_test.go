package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/buildhubhq/buildhub-backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, userID uint, key string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.JwtCustomClaims{UserID: userID})
	s, err := token.SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func runThroughMiddleware(authorization string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := JWTAuthMiddleware()(func(c echo.Context) error {
		claims := c.Get("user").(*models.JwtCustomClaims)
		return c.JSON(http.StatusOK, echo.Map{"user_id": claims.UserID})
	})
	return rec, handler(c)
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	rec, err := runThroughMiddleware("Bearer " + signedToken(t, 42, "test-secret"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "42")
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	_, err := runThroughMiddleware("")
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestJWTAuthRejectsMalformedHeader(t *testing.T) {
	_, err := runThroughMiddleware("Token abc")
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestJWTAuthRejectsWrongSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := runThroughMiddleware("Bearer " + signedToken(t, 42, "some-other-secret"))
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
